package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP. Una mutación
// parcial (PARTIAL) se distingue de un fallo total: lleva los contadores de
// afectadas/previstas para que el cliente decida reintentar o reconciliar.
func respondError(c *fiber.Ctx, err error) error {
	var partial *domain.PartialBatchError
	if errors.As(err, &partial) {
		return c.Status(fiber.StatusMultiStatus).JSON(dto.ErrorResponse{
			Code:     "PARTIAL",
			Message:  partial.Error(),
			Affected: partial.Affected,
			Intended: partial.Intended,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidScopeForRecord):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_SCOPE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTemplate),
		errors.Is(err, domain.ErrInvalidPolicyInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ownerID extrae el propietario de la query (?owner_id=...). La autenticación
// queda fuera de este servicio; el gateway que lo antepone rellena el valor.
func ownerID(c *fiber.Ctx) string {
	return c.Query("owner_id")
}
