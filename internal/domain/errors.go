package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInvalidPolicyInput    = errors.New("mes o política de día inválidos")
	ErrInvalidTemplate       = errors.New("plantilla recurrente inválida")
	ErrInvalidScopeForRecord = errors.New("el alcance solicitado no aplica a un documento desvinculado")
)

// PartialBatchError indica que una mutación por lotes (THIS_AND_FUTURE o
// WHOLE_SERIES) se aplicó solo en parte: Affected filas tocadas de Intended
// previstas. El caller decide si reintenta o reconcilia manualmente.
type PartialBatchError struct {
	Affected int
	Intended int
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("mutación parcial de la serie: %d de %d documentos afectados", e.Affected, e.Intended)
}
