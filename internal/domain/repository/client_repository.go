package repository

import "github.com/anayu15/mi-gestor-sub002/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Client, error)
}
