package dto

import "github.com/shopspring/decimal"

// CreateTemplateRequest body para POST /api/templates.
// Las fechas van en formato 2006-01-02; end_date vacío = sin fecha de fin.
type CreateTemplateRequest struct {
	OwnerID         string          `json:"owner_id" validate:"required"`
	ClientID        string          `json:"client_id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description,omitempty"`
	BaseAmount      decimal.Decimal `json:"base_amount"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
	Frequency       string          `json:"frequency" validate:"required,oneof=MONTHLY QUARTERLY ANNUAL"`
	DayPolicy       string          `json:"day_policy" validate:"required,oneof=SPECIFIC_DAY FIRST_CALENDAR_DAY FIRST_BUSINESS_DAY LAST_CALENDAR_DAY LAST_BUSINESS_DAY"`
	SpecificDay     int             `json:"specific_day,omitempty" validate:"omitempty,min=1,max=31"`
	StartDate       string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string          `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTemplateRequest body para PUT /api/templates/:id.
type UpdateTemplateRequest struct {
	ClientID        string          `json:"client_id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description,omitempty"`
	BaseAmount      decimal.Decimal `json:"base_amount"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
	Frequency       string          `json:"frequency" validate:"required,oneof=MONTHLY QUARTERLY ANNUAL"`
	DayPolicy       string          `json:"day_policy" validate:"required,oneof=SPECIFIC_DAY FIRST_CALENDAR_DAY FIRST_BUSINESS_DAY LAST_CALENDAR_DAY LAST_BUSINESS_DAY"`
	SpecificDay     int             `json:"specific_day,omitempty" validate:"omitempty,min=1,max=31"`
	StartDate       string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string          `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Active          bool            `json:"active"`
}

// TemplateResponse plantilla recurrente en respuestas.
type TemplateResponse struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	ClientID        string          `json:"client_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	BaseAmount      decimal.Decimal `json:"base_amount"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
	Frequency       string          `json:"frequency"`
	DayPolicy       string          `json:"day_policy"`
	SpecificDay     int             `json:"specific_day,omitempty"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date,omitempty"`
	Active          bool            `json:"active"`
}

// PreviewResponse resultado de GET /api/templates/:id/preview: cuántas
// ocurrencias se generarían hasta el horizonte y en qué fechas.
type PreviewResponse struct {
	TemplateID string   `json:"template_id"`
	HorizonEnd string   `json:"horizon_end"`
	Count      int      `json:"count"`
	Dates      []string `json:"dates"`
}

// GenerateResponse resultado de POST /api/templates/:id/generate.
// Skipped son vencimientos ya materializados (contrato create-or-skip).
type GenerateResponse struct {
	TemplateID string `json:"template_id"`
	Created    int    `json:"created"`
	Skipped    int    `json:"skipped"`
}

// DeleteTemplateResponse resultado de DELETE /api/templates/:id: las
// ocurrencias ya generadas no se borran, se desvinculan.
type DeleteTemplateResponse struct {
	ID       string `json:"id"`
	Detached int    `json:"detached_occurrences"`
}
