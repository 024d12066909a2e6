package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

// OccurrencePatch campos editables de una ocurrencia en mutaciones de serie.
// Nil = no tocar. El vencimiento y el vínculo de serie no se parchean por
// aquí: los gobierna el filtro (Detach) y la generación.
type OccurrencePatch struct {
	Name            *string
	BaseAmount      *decimal.Decimal
	VATRate         *decimal.Decimal
	WithholdingRate *decimal.Decimal
	Status          *string
}

// Empty indica si el parche no toca ningún campo.
func (p *OccurrencePatch) Empty() bool {
	return p == nil || (p.Name == nil && p.BaseAmount == nil && p.VATRate == nil &&
		p.WithholdingRate == nil && p.Status == nil)
}

// OccurrenceRepository es el almacén de documentos que consumen el
// materializador y el coordinador de mutaciones de serie.
type OccurrenceRepository interface {
	Create(occ *entity.Occurrence) error
	GetByID(id string) (*entity.Occurrence, error)
	ListBySeries(seriesID string) ([]*entity.Occurrence, error)
	// ExistingDueDates devuelve los vencimientos ya materializados de la
	// serie; el materializador los lee antes de decidir qué crear
	// (contrato create-or-skip).
	ExistingDueDates(seriesID string) (map[time.Time]bool, error)
	// CountByFilter cuenta las ocurrencias que alcanza el filtro (el
	// "previsto" contra el que se detecta una mutación parcial).
	CountByFilter(f *schedule.SeriesFilter) (int, error)
	// UpdateByFilter aplica el parche (y el desvínculo si f.Detach) a las
	// ocurrencias del filtro; devuelve cuántas filas tocó.
	UpdateByFilter(f *schedule.SeriesFilter, patch *OccurrencePatch, now time.Time) (int, error)
	// DeleteByFilter elimina las ocurrencias del filtro; devuelve cuántas.
	DeleteByFilter(f *schedule.SeriesFilter) (int, error)
	// DetachSeries anula el vínculo de serie de todas las ocurrencias de la
	// serie (política de borrado de plantilla).
	DetachSeries(seriesID string, now time.Time) (int, error)
}
