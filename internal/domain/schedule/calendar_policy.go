package schedule

import (
	"time"

	"github.com/anayu15/mi-gestor-sub002/internal/domain"
)

// Políticas de selección de día dentro del período.
const (
	PolicySpecificDay      = "SPECIFIC_DAY"
	PolicyFirstCalendarDay = "FIRST_CALENDAR_DAY"
	PolicyFirstBusinessDay = "FIRST_BUSINESS_DAY"
	PolicyLastCalendarDay  = "LAST_CALENDAR_DAY"
	PolicyLastBusinessDay  = "LAST_BUSINESS_DAY"
)

// ValidPolicy indica si el valor corresponde a una política conocida.
func ValidPolicy(policy string) bool {
	switch policy {
	case PolicySpecificDay, PolicyFirstCalendarDay, PolicyFirstBusinessDay,
		PolicyLastCalendarDay, PolicyLastBusinessDay:
		return true
	}
	return false
}

// ResolveDate calcula la fecha concreta de un mes bajo una política de día.
// specificDay solo se consulta con SPECIFIC_DAY; si el mes no tiene ese día
// (ej. 31 en febrero) se usa el último día disponible del mes, nunca hay
// desbordamiento al mes siguiente. Los días hábiles son lunes–viernes según
// el calendario gregoriano; no se consulta ningún calendario de festivos.
// La fecha devuelta queda normalizada a medianoche UTC.
func ResolveDate(policy string, year, month, specificDay int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, domain.ErrInvalidPolicyInput
	}
	switch policy {
	case PolicySpecificDay:
		if specificDay < 1 || specificDay > 31 {
			return time.Time{}, domain.ErrInvalidPolicyInput
		}
		day := specificDay
		if last := DaysInMonth(year, month); day > last {
			day = last
		}
		return dateUTC(year, month, day), nil
	case PolicyFirstCalendarDay:
		return dateUTC(year, month, 1), nil
	case PolicyLastCalendarDay:
		return dateUTC(year, month, DaysInMonth(year, month)), nil
	case PolicyFirstBusinessDay:
		d := dateUTC(year, month, 1)
		for isWeekend(d) {
			d = d.AddDate(0, 0, 1)
		}
		return d, nil
	case PolicyLastBusinessDay:
		d := dateUTC(year, month, DaysInMonth(year, month))
		for isWeekend(d) {
			d = d.AddDate(0, 0, -1)
		}
		return d, nil
	}
	return time.Time{}, domain.ErrInvalidPolicyInput
}

// DaysInMonth devuelve el número de días del mes (28–31, con años bisiestos).
func DaysInMonth(year, month int) int {
	// Día 0 del mes siguiente = último día de este mes.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateUTC(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
