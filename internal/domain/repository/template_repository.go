package repository

import "github.com/anayu15/mi-gestor-sub002/internal/domain/entity"

// TemplateRepository define el puerto de persistencia para plantillas
// recurrentes.
type TemplateRepository interface {
	Create(tpl *entity.RecurringTemplate) error
	Update(tpl *entity.RecurringTemplate) error
	Delete(id string) error
	GetByID(id string) (*entity.RecurringTemplate, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.RecurringTemplate, error)
	// ListActive devuelve las plantillas activas de todos los propietarios
	// (barrido del job periódico de generación).
	ListActive() ([]*entity.RecurringTemplate, error)
}
