package recurring

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
)

// ClientUseCase casos de uso de clientes (destinatarios de las plantillas).
type ClientUseCase struct {
	repo     repository.ClientRepository
	validate *validator.Validate
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, validate: validator.New()}
}

// Create crea un cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	client := &entity.Client{
		ID:        uuid.New().String(),
		OwnerID:   in.OwnerID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get obtiene un cliente del propietario.
func (uc *ClientUseCase) Get(ctx context.Context, ownerID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return toClientResponse(client), nil
}

// List lista los clientes del propietario.
func (uc *ClientUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:      c.ID,
		OwnerID: c.OwnerID,
		Name:    c.Name,
		TaxID:   c.TaxID,
		Email:   c.Email,
	}
}
