package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
)

// OccurrenceHandler maneja las peticiones HTTP de ocurrencias (documentos
// generados) y sus mutaciones con alcance.
type OccurrenceHandler struct {
	uc *recurring.MutationUseCase
}

// NewOccurrenceHandler construye el handler.
func NewOccurrenceHandler(uc *recurring.MutationUseCase) *OccurrenceHandler {
	return &OccurrenceHandler{uc: uc}
}

// List GET /api/occurrences?owner_id=...&series_id=...
func (h *OccurrenceHandler) List(c *fiber.Ctx) error {
	seriesID := c.Query("series_id")
	if seriesID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "series_id es requerido"})
	}
	list, err := h.uc.ListBySeries(c.Context(), ownerID(c), seriesID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/occurrences/:id?owner_id=...
// needs_scope_prompt indica si procede el diálogo de tres opciones.
func (h *OccurrenceHandler) GetByID(c *fiber.Ctx) error {
	occ, err := h.uc.Get(c.Context(), ownerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(occ)
}

// Update PUT /api/occurrences/:id?owner_id=...
// El body lleva el alcance (scope) y el parche; con ONLY_THIS el documento
// queda además desvinculado de su serie.
func (h *OccurrenceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOccurrenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Edit(c.Context(), ownerID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Delete DELETE /api/occurrences/:id?owner_id=...&scope=ONLY_THIS
func (h *OccurrenceHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.Delete(c.Context(), ownerID(c), c.Params("id"), c.Query("scope"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
