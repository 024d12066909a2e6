package recurring

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

// MutationUseCase coordina las ediciones y borrados con alcance sobre una
// serie (solo esta / esta y futuras / toda la serie). Opera sobre vínculo de
// serie y fecha de vencimiento; el contenido del parche lo aplica el almacén.
type MutationUseCase struct {
	occRepo  repository.OccurrenceRepository
	validate *validator.Validate
}

// NewMutationUseCase construye el caso de uso.
func NewMutationUseCase(occRepo repository.OccurrenceRepository) *MutationUseCase {
	return &MutationUseCase{occRepo: occRepo, validate: validator.New()}
}

// Get obtiene una ocurrencia del propietario.
func (uc *MutationUseCase) Get(ctx context.Context, ownerID, id string) (*dto.OccurrenceResponse, error) {
	occ, err := uc.ownedOccurrence(ownerID, id)
	if err != nil {
		return nil, err
	}
	return toOccurrenceResponse(occ), nil
}

// ListBySeries lista las ocurrencias aún vinculadas a la serie.
func (uc *MutationUseCase) ListBySeries(ctx context.Context, ownerID, seriesID string) ([]*dto.OccurrenceResponse, error) {
	list, err := uc.occRepo.ListBySeries(seriesID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OccurrenceResponse, 0, len(list))
	for _, occ := range list {
		if occ.OwnerID != ownerID {
			return nil, domain.ErrForbidden
		}
		out = append(out, toOccurrenceResponse(occ))
	}
	return out, nil
}

// Edit aplica el parche con el alcance pedido. Con ONLY_THIS el documento
// además se desvincula de la serie: a partir de ahí es un documento suelto y
// ninguna operación de serie posterior lo alcanza.
//
// Los alcances de lote se aplican como un solo lote lógico: se cuenta lo
// previsto, se aplica y, si los números divergen, se devuelve
// PartialBatchError con afectadas/previstas para que el caller reconcilie.
func (uc *MutationUseCase) Edit(ctx context.Context, ownerID, occurrenceID string, in dto.UpdateOccurrenceRequest) (*dto.MutationResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	occ, err := uc.ownedOccurrence(ownerID, occurrenceID)
	if err != nil {
		return nil, err
	}
	filter, err := schedule.ResolveScope(occ, in.Scope)
	if err != nil {
		return nil, err
	}

	patch := &repository.OccurrencePatch{
		Name:            in.Name,
		BaseAmount:      in.BaseAmount,
		VATRate:         in.VATRate,
		WithholdingRate: in.WithholdingRate,
		Status:          in.Status,
	}
	if patch.Empty() && !filter.Detach {
		return nil, domain.ErrInvalidInput
	}

	intended, err := uc.intendedCount(filter)
	if err != nil {
		return nil, err
	}
	affected, err := uc.occRepo.UpdateByFilter(filter, patch, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.result(in.Scope, filter, affected, intended)
}

// Delete borra con el alcance pedido. ONLY_THIS elimina solo este documento
// (deja de existir y, por tanto, de pertenecer a la serie); los alcances de
// lote eliminan las ocurrencias que el filtro alcanza.
func (uc *MutationUseCase) Delete(ctx context.Context, ownerID, occurrenceID, scope string) (*dto.MutationResponse, error) {
	occ, err := uc.ownedOccurrence(ownerID, occurrenceID)
	if err != nil {
		return nil, err
	}
	filter, err := schedule.ResolveScope(occ, scope)
	if err != nil {
		return nil, err
	}

	intended, err := uc.intendedCount(filter)
	if err != nil {
		return nil, err
	}
	affected, err := uc.occRepo.DeleteByFilter(filter)
	if err != nil {
		return nil, err
	}
	return uc.result(scope, filter, affected, intended)
}

func (uc *MutationUseCase) intendedCount(f *schedule.SeriesFilter) (int, error) {
	if f.Single() {
		return 1, nil
	}
	return uc.occRepo.CountByFilter(f)
}

// result detecta la divergencia afectadas/previstas de un lote no atómico.
func (uc *MutationUseCase) result(scope string, f *schedule.SeriesFilter, affected, intended int) (*dto.MutationResponse, error) {
	if f.Single() && affected == 0 {
		return nil, domain.ErrNotFound
	}
	if affected != intended {
		return nil, &domain.PartialBatchError{Affected: affected, Intended: intended}
	}
	return &dto.MutationResponse{
		Scope:    scope,
		Affected: affected,
		Intended: intended,
		Detached: f.Detach,
	}, nil
}

func (uc *MutationUseCase) ownedOccurrence(ownerID, id string) (*entity.Occurrence, error) {
	occ, err := uc.occRepo.GetByID(id)
	if err != nil || occ == nil {
		return nil, domain.ErrNotFound
	}
	if occ.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return occ, nil
}

func toOccurrenceResponse(occ *entity.Occurrence) *dto.OccurrenceResponse {
	return &dto.OccurrenceResponse{
		ID:               occ.ID,
		SeriesID:         occ.SeriesID,
		OwnerID:          occ.OwnerID,
		ClientID:         occ.ClientID,
		Name:             occ.Name,
		DueDate:          occ.DueDate.Format(dateLayout),
		BaseAmount:       occ.BaseAmount,
		VATRate:          occ.VATRate,
		WithholdingRate:  occ.WithholdingRate,
		Status:           occ.Status,
		NeedsScopePrompt: !occ.Detached(),
	}
}
