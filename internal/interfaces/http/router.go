package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TemplateUC    *recurring.TemplateUseCase
	MaterializeUC *recurring.MaterializeUseCase
	MutationUC    *recurring.MutationUseCase
	ClientUC      *recurring.ClientUseCase
	HorizonMonths int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clientes
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	// Plantillas recurrentes
	templates := api.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC, deps.MaterializeUC, deps.HorizonMonths)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
	templates.Get("/:id/preview", templateHandler.Preview)
	templates.Post("/:id/generate", templateHandler.Generate)

	// Ocurrencias (documentos generados)
	occurrences := api.Group("/occurrences")
	occurrenceHandler := NewOccurrenceHandler(deps.MutationUC)
	occurrences.Get("/", occurrenceHandler.List)
	occurrences.Get("/:id", occurrenceHandler.GetByID)
	occurrences.Put("/:id", occurrenceHandler.Update)
	occurrences.Delete("/:id", occurrenceHandler.Delete)
}
