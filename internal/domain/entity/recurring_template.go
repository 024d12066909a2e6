package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias de generación soportadas.
const (
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyAnnual    = "ANNUAL"
)

// RecurringTemplate es la plantilla de un documento recurrente (factura o
// gasto). Define el calendario de generación y la instantánea financiera que
// se copia a cada ocurrencia. La plantilla solo cambia por edición explícita
// del usuario; la generación de ocurrencias nunca la muta.
type RecurringTemplate struct {
	ID          string
	OwnerID     string
	ClientID    string
	Name        string
	Description string

	// Instantánea financiera (opaca para el planificador: se copia tal cual).
	BaseAmount      decimal.Decimal
	VATRate         decimal.Decimal // IVA, ej. 21
	WithholdingRate decimal.Decimal // retención IRPF, ej. 15

	Frequency   string // MONTHLY, QUARTERLY, ANNUAL
	DayPolicy   string // ver schedule.DayPolicy
	SpecificDay int    // 1–31; solo relevante con SPECIFIC_DAY

	StartDate time.Time  // inclusivo
	EndDate   *time.Time // inclusivo; nil = sin fecha de fin
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
