package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

// MaterializeUseCase convierte el calendario de una plantilla en ocurrencias
// persistidas. Contrato create-or-skip: regenerar nunca duplica vencimientos
// ya materializados de la serie.
type MaterializeUseCase struct {
	txRunner SeriesTxRunner
	tplRepo  repository.TemplateRepository
}

// NewMaterializeUseCase construye el caso de uso.
func NewMaterializeUseCase(txRunner SeriesTxRunner, tplRepo repository.TemplateRepository) *MaterializeUseCase {
	return &MaterializeUseCase{txRunner: txRunner, tplRepo: tplRepo}
}

// Materialize genera las ocurrencias de la plantilla hasta horizonEnd.
// La lectura de los vencimientos existentes y las inserciones van en una
// misma transacción: primero se lee todo, luego se decide qué crear.
func (uc *MaterializeUseCase) Materialize(ctx context.Context, ownerID, templateID string, horizonEnd time.Time) (*dto.GenerateResponse, error) {
	tpl, err := uc.tplRepo.GetByID(templateID)
	if err != nil || tpl == nil {
		return nil, domain.ErrNotFound
	}
	if tpl.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	created, skipped, err := uc.materialize(ctx, tpl, horizonEnd)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateResponse{TemplateID: templateID, Created: created, Skipped: skipped}, nil
}

// SweepResult resumen de un barrido del job periódico.
type SweepResult struct {
	Templates int
	Created   int
	Failed    int
}

// Sweep recorre todas las plantillas activas y materializa cada una hasta
// horizonEnd (el job periódico con horizonte avanzado). Una plantilla que
// falla no detiene el barrido; se acumula en Failed.
func (uc *MaterializeUseCase) Sweep(ctx context.Context, horizonEnd time.Time) (*SweepResult, error) {
	templates, err := uc.tplRepo.ListActive()
	if err != nil {
		return nil, err
	}
	res := &SweepResult{Templates: len(templates)}
	for _, tpl := range templates {
		created, _, err := uc.materialize(ctx, tpl, horizonEnd)
		if err != nil {
			res.Failed++
			continue
		}
		res.Created += created
	}
	return res, nil
}

func (uc *MaterializeUseCase) materialize(ctx context.Context, tpl *entity.RecurringTemplate, horizonEnd time.Time) (created, skipped int, err error) {
	dates, err := schedule.Generate(tpl, horizonEnd)
	if err != nil {
		return 0, 0, err
	}
	if len(dates) == 0 {
		return 0, 0, nil
	}

	err = uc.txRunner.RunSeries(ctx, func(_ repository.TemplateRepository, occRepo repository.OccurrenceRepository) error {
		existing, err := occRepo.ExistingDueDates(tpl.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, due := range dates {
			if existing[due] {
				skipped++
				continue
			}
			occ := &entity.Occurrence{
				ID:              uuid.New().String(),
				SeriesID:        tpl.ID,
				OwnerID:         tpl.OwnerID,
				ClientID:        tpl.ClientID,
				Name:            tpl.Name,
				DueDate:         due,
				BaseAmount:      tpl.BaseAmount,
				VATRate:         tpl.VATRate,
				WithholdingRate: tpl.WithholdingRate,
				Status:          entity.OccurrenceStatusDraft,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := occRepo.Create(occ); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, skipped, nil
}
