package recurring

import (
	"context"

	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
)

// SeriesTxRunner ejecuta una función con los repos de plantillas y ocurrencias
// atados a una misma transacción. Lo usa el materializador para que la lectura
// de vencimientos existentes y las inserciones sean un solo lote lógico.
type SeriesTxRunner interface {
	RunSeries(ctx context.Context, fn func(
		tplRepo repository.TemplateRepository,
		occRepo repository.OccurrenceRepository,
	) error) error
}
