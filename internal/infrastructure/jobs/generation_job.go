package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
	"github.com/anayu15/mi-gestor-sub002/pkg/logger"
)

// GenerationJob ejecuta periódicamente el barrido de materialización con un
// horizonte que avanza: cada pasada genera las ocurrencias nuevas de todas
// las plantillas activas hasta hoy + HorizonMonths.
type GenerationJob struct {
	engine        *cron.Cron
	materializer  *recurring.MaterializeUseCase
	log           *logger.Logger
	cronSpec      string // ej. "0 2 * * *" (02:00 cada día)
	horizonMonths int
}

// NewGenerationJob construye el job. horizonMonths acota las plantillas sin
// fecha de fin (la generación abierta no es finita).
func NewGenerationJob(materializer *recurring.MaterializeUseCase, log *logger.Logger, cronSpec string, horizonMonths int) *GenerationJob {
	return &GenerationJob{
		engine:        cron.New(),
		materializer:  materializer,
		log:           log,
		cronSpec:      cronSpec,
		horizonMonths: horizonMonths,
	}
}

// Start registra el barrido en el cron y lo arranca.
func (j *GenerationJob) Start() error {
	if _, err := j.engine.AddFunc(j.cronSpec, j.runSweep); err != nil {
		return fmt.Errorf("registrar job de generación (%q): %w", j.cronSpec, err)
	}
	j.engine.Start()
	j.log.Info().
		Str("cron", j.cronSpec).
		Int("horizon_months", j.horizonMonths).
		Msg("job de generación de recurrentes arrancado")
	return nil
}

// Stop detiene el cron y espera a que termine la pasada en curso.
func (j *GenerationJob) Stop() {
	ctx := j.engine.Stop()
	<-ctx.Done()
	j.log.Info().Msg("job de generación detenido")
}

func (j *GenerationJob) runSweep() {
	horizon := time.Now().UTC().AddDate(0, j.horizonMonths, 0)
	res, err := j.materializer.Sweep(context.Background(), horizon)
	if err != nil {
		j.log.Error().Err(err).Msg("barrido de generación fallido")
		return
	}
	j.log.Info().
		Int("templates", res.Templates).
		Int("created", res.Created).
		Int("failed", res.Failed).
		Time("horizon", horizon).
		Msg("barrido de generación completado")
}
