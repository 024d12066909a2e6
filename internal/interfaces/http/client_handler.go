package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
)

// ClientHandler maneja las peticiones HTTP de clientes.
type ClientHandler struct {
	uc *recurring.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *recurring.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List GET /api/clients?owner_id=...&limit=20&offset=0
func (h *ClientHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), ownerID(c), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/clients/:id?owner_id=...
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.Get(c.Context(), ownerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}
