package schedule

import (
	"time"

	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
)

// Meses por paso según la frecuencia.
var stepMonths = map[string]int{
	entity.FrequencyMonthly:   1,
	entity.FrequencyQuarterly: 3,
	entity.FrequencyAnnual:    12,
}

// ValidateTemplate comprueba los campos de calendario de la plantilla antes
// de generar: frecuencia y política conocidas, día específico en rango (solo
// con SPECIFIC_DAY; con otra política se ignora sin validar), fecha de inicio
// presente y no posterior a la de fin.
func ValidateTemplate(tpl *entity.RecurringTemplate) error {
	if tpl == nil || tpl.StartDate.IsZero() {
		return domain.ErrInvalidTemplate
	}
	if _, ok := stepMonths[tpl.Frequency]; !ok {
		return domain.ErrInvalidTemplate
	}
	if !ValidPolicy(tpl.DayPolicy) {
		return domain.ErrInvalidTemplate
	}
	if tpl.DayPolicy == PolicySpecificDay && (tpl.SpecificDay < 1 || tpl.SpecificDay > 31) {
		return domain.ErrInvalidTemplate
	}
	if tpl.EndDate != nil && tpl.EndDate.Before(tpl.StartDate) {
		return domain.ErrInvalidTemplate
	}
	return nil
}

// Generate expande la plantilla en la secuencia ordenada de fechas de
// vencimiento dentro de la ventana [StartDate, min(EndDate, horizonEnd)].
//
// Regla de avance: partiendo del mes que contiene StartDate, se avanza de
// 1/3/12 meses según la frecuencia y cada período se resuelve con la política
// de día. La fecha resuelta del primer período puede caer antes de StartDate
// (ej. inicio el 20 con FIRST_CALENDAR_DAY): se descarta y se pasa al período
// siguiente, nunca se emite una fecha anterior al inicio.
//
// Es una función pura de (plantilla, horizonte): mismo input, misma secuencia.
func Generate(tpl *entity.RecurringTemplate, horizonEnd time.Time) ([]time.Time, error) {
	if err := ValidateTemplate(tpl); err != nil {
		return nil, err
	}

	step := stepMonths[tpl.Frequency]
	start := truncateToDay(tpl.StartDate)
	upper := truncateToDay(horizonEnd)
	if tpl.EndDate != nil {
		if end := truncateToDay(*tpl.EndDate); end.Before(upper) {
			upper = end
		}
	}

	var dates []time.Time
	year, month := start.Year(), int(start.Month())
	for {
		due, err := ResolveDate(tpl.DayPolicy, year, month, tpl.SpecificDay)
		if err != nil {
			return nil, err
		}
		if due.After(upper) {
			break
		}
		// Solo el primer período puede resolver antes del inicio.
		if !due.Before(start) {
			dates = append(dates, due)
		}
		year, month = addMonths(year, month, step)
	}
	return dates, nil
}

// PreviewCount devuelve cuántas ocurrencias generaría la plantilla hasta el
// horizonte (el "se generarán N facturas" de la interfaz).
func PreviewCount(tpl *entity.RecurringTemplate, horizonEnd time.Time) (int, error) {
	dates, err := Generate(tpl, horizonEnd)
	if err != nil {
		return 0, err
	}
	return len(dates), nil
}

func addMonths(year, month, n int) (int, int) {
	month += n
	for month > 12 {
		month -= 12
		year++
	}
	return year, month
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
