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
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

// TemplateUseCase casos de uso de plantillas recurrentes: CRUD, preview y la
// política de borrado (desvincular, no borrar, las ocurrencias ya generadas).
type TemplateUseCase struct {
	txRunner   SeriesTxRunner
	tplRepo    repository.TemplateRepository
	clientRepo repository.ClientRepository
	validate   *validator.Validate
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(txRunner SeriesTxRunner, tplRepo repository.TemplateRepository, clientRepo repository.ClientRepository) *TemplateUseCase {
	return &TemplateUseCase{
		txRunner:   txRunner,
		tplRepo:    tplRepo,
		clientRepo: clientRepo,
		validate:   validator.New(),
	}
}

// Create crea una plantilla recurrente. Valida el calendario con las mismas
// reglas del generador, de modo que una plantilla guardada siempre genera.
func (uc *TemplateUseCase) Create(ctx context.Context, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OwnerID != in.OwnerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	tpl := &entity.RecurringTemplate{
		ID:              uuid.New().String(),
		OwnerID:         in.OwnerID,
		ClientID:        in.ClientID,
		Name:            in.Name,
		Description:     in.Description,
		BaseAmount:      in.BaseAmount,
		VATRate:         in.VATRate,
		WithholdingRate: in.WithholdingRate,
		Frequency:       in.Frequency,
		DayPolicy:       in.DayPolicy,
		SpecificDay:     in.SpecificDay,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := applyDates(tpl, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := schedule.ValidateTemplate(tpl); err != nil {
		return nil, err
	}
	if err := uc.tplRepo.Create(tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Get obtiene una plantilla del propietario.
func (uc *TemplateUseCase) Get(ctx context.Context, ownerID, id string) (*dto.TemplateResponse, error) {
	tpl, err := uc.ownedTemplate(ownerID, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// List lista las plantillas del propietario.
func (uc *TemplateUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) ([]*dto.TemplateResponse, error) {
	page.DefaultPage()
	list, err := uc.tplRepo.ListByOwner(ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TemplateResponse, 0, len(list))
	for _, tpl := range list {
		out = append(out, toTemplateResponse(tpl))
	}
	return out, nil
}

// Update edita la plantilla. Solo la edición explícita muta la plantilla; las
// ocurrencias ya generadas conservan su instantánea.
func (uc *TemplateUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	tpl, err := uc.ownedTemplate(ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.ClientID != tpl.ClientID {
		client, err := uc.clientRepo.GetByID(in.ClientID)
		if err != nil || client == nil {
			return nil, domain.ErrNotFound
		}
		if client.OwnerID != ownerID {
			return nil, domain.ErrForbidden
		}
	}

	tpl.ClientID = in.ClientID
	tpl.Name = in.Name
	tpl.Description = in.Description
	tpl.BaseAmount = in.BaseAmount
	tpl.VATRate = in.VATRate
	tpl.WithholdingRate = in.WithholdingRate
	tpl.Frequency = in.Frequency
	tpl.DayPolicy = in.DayPolicy
	tpl.SpecificDay = in.SpecificDay
	tpl.Active = in.Active
	tpl.EndDate = nil
	if err := applyDates(tpl, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := schedule.ValidateTemplate(tpl); err != nil {
		return nil, err
	}
	tpl.UpdatedAt = time.Now()
	if err := uc.tplRepo.Update(tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Delete borra la plantilla y desvincula (series_id a NULL) sus ocurrencias ya
// materializadas: los borradores emitidos sobreviven como documentos sueltos.
func (uc *TemplateUseCase) Delete(ctx context.Context, ownerID, id string) (*dto.DeleteTemplateResponse, error) {
	if _, err := uc.ownedTemplate(ownerID, id); err != nil {
		return nil, err
	}
	var detached int
	err := uc.txRunner.RunSeries(ctx, func(tplRepo repository.TemplateRepository, occRepo repository.OccurrenceRepository) error {
		n, err := occRepo.DetachSeries(id, time.Now())
		if err != nil {
			return err
		}
		detached = n
		return tplRepo.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteTemplateResponse{ID: id, Detached: detached}, nil
}

// Preview calcula cuántas ocurrencias generaría la plantilla hasta el
// horizonte y en qué fechas ("se generarán N facturas").
func (uc *TemplateUseCase) Preview(ctx context.Context, ownerID, id string, horizonEnd time.Time) (*dto.PreviewResponse, error) {
	tpl, err := uc.ownedTemplate(ownerID, id)
	if err != nil {
		return nil, err
	}
	dates, err := schedule.Generate(tpl, horizonEnd)
	if err != nil {
		return nil, err
	}
	out := &dto.PreviewResponse{
		TemplateID: tpl.ID,
		HorizonEnd: horizonEnd.Format(dateLayout),
		Count:      len(dates),
		Dates:      make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		out.Dates = append(out.Dates, d.Format(dateLayout))
	}
	return out, nil
}

func (uc *TemplateUseCase) ownedTemplate(ownerID, id string) (*entity.RecurringTemplate, error) {
	tpl, err := uc.tplRepo.GetByID(id)
	if err != nil || tpl == nil {
		return nil, domain.ErrNotFound
	}
	if tpl.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return tpl, nil
}

func applyDates(tpl *entity.RecurringTemplate, start, end string) error {
	startDate, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return domain.ErrInvalidInput
	}
	tpl.StartDate = startDate
	if end != "" {
		endDate, err := time.ParseInLocation(dateLayout, end, time.UTC)
		if err != nil {
			return domain.ErrInvalidInput
		}
		tpl.EndDate = &endDate
	}
	return nil
}

func toTemplateResponse(tpl *entity.RecurringTemplate) *dto.TemplateResponse {
	out := &dto.TemplateResponse{
		ID:              tpl.ID,
		OwnerID:         tpl.OwnerID,
		ClientID:        tpl.ClientID,
		Name:            tpl.Name,
		Description:     tpl.Description,
		BaseAmount:      tpl.BaseAmount,
		VATRate:         tpl.VATRate,
		WithholdingRate: tpl.WithholdingRate,
		Frequency:       tpl.Frequency,
		DayPolicy:       tpl.DayPolicy,
		SpecificDay:     tpl.SpecificDay,
		StartDate:       tpl.StartDate.Format(dateLayout),
		Active:          tpl.Active,
	}
	if tpl.EndDate != nil {
		out.EndDate = tpl.EndDate.Format(dateLayout)
	}
	return out
}
