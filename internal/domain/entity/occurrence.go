package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una ocurrencia materializada.
const (
	OccurrenceStatusDraft  = "DRAFT"  // borrador generado, pendiente de emitir
	OccurrenceStatusIssued = "ISSUED" // emitida por el usuario
)

// Occurrence es un documento concreto (borrador de factura/gasto) generado a
// partir de una plantilla recurrente. SeriesID vacío significa que está
// desvinculada de su serie ("solo esta"): las operaciones de serie ya no la
// alcanzan.
type Occurrence struct {
	ID       string
	SeriesID string // id de la plantilla origen; "" = desvinculada (NULL en BD)
	OwnerID  string
	ClientID string
	Name     string

	DueDate time.Time // fecha resuelta por la política de día

	// Instantánea copiada de la plantilla al generar; las ediciones
	// posteriores de la plantilla no la tocan salvo "aplicar a toda la serie".
	BaseAmount      decimal.Decimal
	VATRate         decimal.Decimal
	WithholdingRate decimal.Decimal

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detached indica si la ocurrencia ya no pertenece a ninguna serie.
func (o *Occurrence) Detached() bool {
	return o.SeriesID == ""
}
