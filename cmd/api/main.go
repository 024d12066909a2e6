package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
	"github.com/anayu15/mi-gestor-sub002/internal/infrastructure/jobs"
	"github.com/anayu15/mi-gestor-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/anayu15/mi-gestor-sub002/internal/interfaces/http"
	"github.com/anayu15/mi-gestor-sub002/pkg/config"
	"github.com/anayu15/mi-gestor-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	templateRepo := postgres.NewTemplateRepository(pool)
	occurrenceRepo := postgres.NewOccurrenceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	templateUC := recurring.NewTemplateUseCase(txRunner, templateRepo, clientRepo)
	materializeUC := recurring.NewMaterializeUseCase(txRunner, templateRepo)
	mutationUC := recurring.NewMutationUseCase(occurrenceRepo)
	clientUC := recurring.NewClientUseCase(clientRepo)

	// Barrido periódico: materializa las plantillas activas hasta hoy + horizonte.
	var generationJob *jobs.GenerationJob
	if cfg.Scheduler.JobEnabled {
		generationJob = jobs.NewGenerationJob(materializeUC, log, cfg.Scheduler.Cron, cfg.Scheduler.HorizonMonths)
		if err := generationJob.Start(); err != nil {
			log.Fatal().Err(err).Msg("arranque del job de generación")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mi Gestor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TemplateUC:    templateUC,
		MaterializeUC: materializeUC,
		MutationUC:    mutationUC,
		ClientUC:      clientUC,
		HorizonMonths: cfg.Scheduler.HorizonMonths,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if generationJob != nil {
		generationJob.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
