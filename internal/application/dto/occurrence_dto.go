package dto

import "github.com/shopspring/decimal"

// OccurrenceResponse ocurrencia materializada en respuestas.
// NeedsScopePrompt indica a la interfaz si debe ofrecer el diálogo de tres
// opciones (solo con ocurrencias aún vinculadas a su serie).
type OccurrenceResponse struct {
	ID               string          `json:"id"`
	SeriesID         string          `json:"series_id,omitempty"`
	OwnerID          string          `json:"owner_id"`
	ClientID         string          `json:"client_id"`
	Name             string          `json:"name"`
	DueDate          string          `json:"due_date"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	VATRate          decimal.Decimal `json:"vat_rate"`
	WithholdingRate  decimal.Decimal `json:"withholding_rate"`
	Status           string          `json:"status"`
	NeedsScopePrompt bool            `json:"needs_scope_prompt"`
}

// UpdateOccurrenceRequest body para PUT /api/occurrences/:id. Los campos del
// parche son punteros: nil = no tocar.
type UpdateOccurrenceRequest struct {
	Scope           string           `json:"scope" validate:"required,oneof=ONLY_THIS THIS_AND_FUTURE WHOLE_SERIES"`
	Name            *string          `json:"name,omitempty"`
	BaseAmount      *decimal.Decimal `json:"base_amount,omitempty"`
	VATRate         *decimal.Decimal `json:"vat_rate,omitempty"`
	WithholdingRate *decimal.Decimal `json:"withholding_rate,omitempty"`
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=DRAFT ISSUED"`
}

// MutationResponse resultado de una edición/borrado con alcance.
type MutationResponse struct {
	Scope    string `json:"scope"`
	Affected int    `json:"affected"`
	Intended int    `json:"intended"`
	Detached bool   `json:"detached"` // true si la operación desvinculó el documento
}
