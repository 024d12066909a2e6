package recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

func seedTemplate(db *memDB) *entity.RecurringTemplate {
	tpl := &entity.RecurringTemplate{
		ID:              "tpl-1",
		OwnerID:         "owner-1",
		ClientID:        "cli-1",
		Name:            "Cuota mensual asesoría",
		BaseAmount:      decimal.NewFromInt(300),
		VATRate:         decimal.NewFromInt(21),
		WithholdingRate: decimal.NewFromInt(15),
		Frequency:       entity.FrequencyMonthly,
		DayPolicy:       schedule.PolicyFirstCalendarDay,
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:          true,
	}
	db.templates[tpl.ID] = tpl
	return tpl
}

func TestMaterialize_GeneraDoceOcurrencias(t *testing.T) {
	db := newMemDB()
	tpl := seedTemplate(db)
	uc := recurring.NewMaterializeUseCase(&fakeTxRunner{db: db}, db.templateRepo())
	horizon := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	res, err := uc.Materialize(context.Background(), "owner-1", tpl.ID, horizon)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Created)
	assert.Equal(t, 0, res.Skipped)

	list, err := db.occurrenceRepo().ListBySeries(tpl.ID)
	require.NoError(t, err)
	require.Len(t, list, 12)

	// Instantánea financiera copiada de la plantilla al generar.
	first := list[0]
	assert.Equal(t, tpl.ID, first.SeriesID)
	assert.True(t, first.BaseAmount.Equal(tpl.BaseAmount))
	assert.True(t, first.VATRate.Equal(tpl.VATRate))
	assert.True(t, first.WithholdingRate.Equal(tpl.WithholdingRate))
	assert.Equal(t, entity.OccurrenceStatusDraft, first.Status)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
}

func TestMaterialize_EsIdempotente(t *testing.T) {
	db := newMemDB()
	tpl := seedTemplate(db)
	uc := recurring.NewMaterializeUseCase(&fakeTxRunner{db: db}, db.templateRepo())
	horizon := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := uc.Materialize(context.Background(), "owner-1", tpl.ID, horizon)
	require.NoError(t, err)

	res, err := uc.Materialize(context.Background(), "owner-1", tpl.ID, horizon)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created, "regenerar no debe duplicar vencimientos")
	assert.Equal(t, 12, res.Skipped)

	list, _ := db.occurrenceRepo().ListBySeries(tpl.ID)
	assert.Len(t, list, 12)
}

func TestMaterialize_HorizonteAvanzadoSoloCreaLoNuevo(t *testing.T) {
	db := newMemDB()
	tpl := seedTemplate(db)
	uc := recurring.NewMaterializeUseCase(&fakeTxRunner{db: db}, db.templateRepo())

	_, err := uc.Materialize(context.Background(), "owner-1", tpl.ID, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	res, err := uc.Materialize(context.Background(), "owner-1", tpl.ID, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Created, "solo los meses nuevos del horizonte ampliado")
	assert.Equal(t, 6, res.Skipped)
}

func TestMaterialize_PlantillaAjena(t *testing.T) {
	db := newMemDB()
	tpl := seedTemplate(db)
	uc := recurring.NewMaterializeUseCase(&fakeTxRunner{db: db}, db.templateRepo())

	_, err := uc.Materialize(context.Background(), "otro", tpl.ID, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Materialize(context.Background(), "owner-1", "no-existe", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSweep_RecorreActivasYSigueTrasFallo(t *testing.T) {
	db := newMemDB()
	seedTemplate(db)

	rota := &entity.RecurringTemplate{
		ID:        "tpl-rota",
		OwnerID:   "owner-1",
		Frequency: "SEMANAL", // frecuencia desconocida: la generación falla
		DayPolicy: schedule.PolicyFirstCalendarDay,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
	db.templates[rota.ID] = rota

	inactiva := &entity.RecurringTemplate{
		ID:        "tpl-inactiva",
		OwnerID:   "owner-1",
		Frequency: entity.FrequencyMonthly,
		DayPolicy: schedule.PolicyFirstCalendarDay,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    false,
	}
	db.templates[inactiva.ID] = inactiva

	uc := recurring.NewMaterializeUseCase(&fakeTxRunner{db: db}, db.templateRepo())
	res, err := uc.Sweep(context.Background(), time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Templates, "las inactivas no entran en el barrido")
	assert.Equal(t, 12, res.Created)
	assert.Equal(t, 1, res.Failed, "una plantilla rota no detiene el barrido")

	list, _ := db.occurrenceRepo().ListBySeries("tpl-inactiva")
	assert.Empty(t, list)
}
