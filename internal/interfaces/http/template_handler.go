package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
)

// TemplateHandler maneja las peticiones HTTP de plantillas recurrentes.
type TemplateHandler struct {
	uc            *recurring.TemplateUseCase
	materializer  *recurring.MaterializeUseCase
	horizonMonths int // horizonte por defecto para preview/generación
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *recurring.TemplateUseCase, materializer *recurring.MaterializeUseCase, horizonMonths int) *TemplateHandler {
	return &TemplateHandler{uc: uc, materializer: materializer, horizonMonths: horizonMonths}
}

// Create POST /api/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tpl, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// List GET /api/templates?owner_id=...&limit=20&offset=0
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), ownerID(c), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/templates/:id?owner_id=...
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	tpl, err := h.uc.Get(c.Context(), ownerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tpl)
}

// Update PUT /api/templates/:id?owner_id=...
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tpl, err := h.uc.Update(c.Context(), ownerID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tpl)
}

// Delete DELETE /api/templates/:id?owner_id=...
// Las ocurrencias ya generadas no se borran: quedan desvinculadas.
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.Delete(c.Context(), ownerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Preview GET /api/templates/:id/preview?owner_id=...&months=12
// Devuelve cuántas ocurrencias se generarían y en qué fechas.
func (h *TemplateHandler) Preview(c *fiber.Ctx) error {
	res, err := h.uc.Preview(c.Context(), ownerID(c), c.Params("id"), h.horizonEnd(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Generate POST /api/templates/:id/generate?owner_id=...&months=12
func (h *TemplateHandler) Generate(c *fiber.Ctx) error {
	res, err := h.materializer.Materialize(c.Context(), ownerID(c), c.Params("id"), h.horizonEnd(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *TemplateHandler) horizonEnd(c *fiber.Ctx) time.Time {
	months, err := strconv.Atoi(c.Query("months", ""))
	if err != nil || months <= 0 {
		months = h.horizonMonths
	}
	return time.Now().UTC().AddDate(0, months, 0)
}
