package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	OwnerID string `json:"owner_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
}
