package schedule

import (
	"time"

	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
)

// Alcances de edición/borrado sobre una ocurrencia de serie.
const (
	ScopeOnlyThis      = "ONLY_THIS"       // solo este documento; lo desvincula de la serie
	ScopeThisAndFuture = "THIS_AND_FUTURE" // este y los siguientes de la serie
	ScopeWholeSeries   = "WHOLE_SERIES"    // toda la serie, anteriores incluidos
)

// ValidScope indica si el valor corresponde a un alcance conocido.
func ValidScope(scope string) bool {
	switch scope {
	case ScopeOnlyThis, ScopeThisAndFuture, ScopeWholeSeries:
		return true
	}
	return false
}

// SeriesFilter es el predicado que determina qué ocurrencias toca una
// mutación. Lo consume el almacén de documentos; aquí no se toca persistencia.
type SeriesFilter struct {
	// OccurrenceID acota a un único documento (alcance ONLY_THIS).
	OccurrenceID string
	// SeriesID acota a la serie (alcances de lote).
	SeriesID string
	// From, si no es nil, acota a vencimientos >= From (THIS_AND_FUTURE).
	// La comparación es siempre sobre la fecha concreta resuelta, nunca
	// sobre el día nominal de la plantilla.
	From *time.Time
	// Detach indica que la mutación debe anular además el vínculo de serie.
	Detach bool
}

// Single indica si el filtro alcanza exactamente un documento.
func (f *SeriesFilter) Single() bool {
	return f.OccurrenceID != ""
}

// ResolveScope calcula el filtro de una mutación sobre occ con el alcance
// pedido. Función pura: no lee ni escribe el almacén.
//
// Una ocurrencia desvinculada (sin serie) solo admite ONLY_THIS; pedir un
// alcance de lote sobre ella falla con ErrInvalidScopeForRecord, que es
// exactamente lo que permite a la interfaz no volver a ofrecer el diálogo de
// tres opciones tras un "solo esta factura".
func ResolveScope(occ *entity.Occurrence, scope string) (*SeriesFilter, error) {
	if occ == nil || !ValidScope(scope) {
		return nil, domain.ErrInvalidInput
	}
	if occ.Detached() && scope != ScopeOnlyThis {
		return nil, domain.ErrInvalidScopeForRecord
	}
	switch scope {
	case ScopeOnlyThis:
		return &SeriesFilter{OccurrenceID: occ.ID, Detach: true}, nil
	case ScopeThisAndFuture:
		cutoff := occ.DueDate
		return &SeriesFilter{SeriesID: occ.SeriesID, From: &cutoff}, nil
	default: // ScopeWholeSeries
		return &SeriesFilter{SeriesID: occ.SeriesID}, nil
	}
}
