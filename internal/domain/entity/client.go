package entity

import "time"

// Client es el destinatario de las plantillas recurrentes (cliente del
// autónomo). Solo los campos que el planificador necesita para referenciar.
type Client struct {
	ID        string
	OwnerID   string
	Name      string
	TaxID     string // NIF/CIF
	Email     string
	CreatedAt time.Time
}
