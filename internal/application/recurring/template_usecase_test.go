package recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anayu15/mi-gestor-sub002/internal/application/dto"
	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
	"github.com/anayu15/mi-gestor-sub002/internal/domain"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
)

func newTemplateUC(db *memDB) *recurring.TemplateUseCase {
	return recurring.NewTemplateUseCase(&fakeTxRunner{db: db}, db.templateRepo(), db.clientRepo())
}

func seedClient(db *memDB) {
	db.clients["cli-1"] = &entity.Client{
		ID: "cli-1", OwnerID: "owner-1", Name: "Estudio Pérez SL", TaxID: "B12345678",
	}
}

func validCreateRequest() dto.CreateTemplateRequest {
	return dto.CreateTemplateRequest{
		OwnerID:         "owner-1",
		ClientID:        "cli-1",
		Name:            "Cuota mensual asesoría",
		BaseAmount:      decimal.NewFromInt(300),
		VATRate:         decimal.NewFromInt(21),
		WithholdingRate: decimal.NewFromInt(15),
		Frequency:       "MONTHLY",
		DayPolicy:       "FIRST_CALENDAR_DAY",
		StartDate:       "2026-01-01",
	}
}

func TestTemplateCreate(t *testing.T) {
	db := newMemDB()
	seedClient(db)
	uc := newTemplateUC(db)

	res, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.True(t, res.Active)
	assert.Equal(t, "2026-01-01", res.StartDate)
	assert.Empty(t, res.EndDate, "sin fecha de fin")
	assert.Contains(t, db.templates, res.ID)
}

func TestTemplateCreate_Validaciones(t *testing.T) {
	db := newMemDB()
	seedClient(db)
	uc := newTemplateUC(db)
	ctx := context.Background()

	in := validCreateRequest()
	in.Frequency = "WEEKLY"
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "frecuencia fuera del enum")

	in = validCreateRequest()
	in.DayPolicy = "SPECIFIC_DAY"
	in.SpecificDay = 0
	_, err = uc.Create(ctx, in)
	assert.Error(t, err, "SPECIFIC_DAY exige día 1–31")

	in = validCreateRequest()
	in.StartDate = "01/01/2026"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha")

	in = validCreateRequest()
	in.EndDate = "2025-12-31"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate, "fin anterior al inicio")

	in = validCreateRequest()
	in.ClientID = "no-existe"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Con una política que no es SPECIFIC_DAY el día específico se ignora.
	in = validCreateRequest()
	in.SpecificDay = 31
	res, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 31, res.SpecificDay)
}

func TestTemplateCreate_ClienteDeOtroPropietario(t *testing.T) {
	db := newMemDB()
	db.clients["cli-ajeno"] = &entity.Client{ID: "cli-ajeno", OwnerID: "otro", Name: "Ajeno", TaxID: "B0"}
	uc := newTemplateUC(db)

	in := validCreateRequest()
	in.ClientID = "cli-ajeno"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTemplatePreview(t *testing.T) {
	db := newMemDB()
	seedClient(db)
	uc := newTemplateUC(db)
	ctx := context.Background()

	created, err := uc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	res, err := uc.Preview(ctx, "owner-1", created.ID, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 12, res.Count, "se generarán 12 facturas")
	require.Len(t, res.Dates, 12)
	assert.Equal(t, "2026-01-01", res.Dates[0])
	assert.Equal(t, "2026-12-01", res.Dates[11])
}

func TestTemplateUpdate_NoTocaOcurrencias(t *testing.T) {
	db := newMemDB()
	seedClient(db)
	seedSeries(db)
	db.templates["tpl-1"] = &entity.RecurringTemplate{
		ID: "tpl-1", OwnerID: "owner-1", ClientID: "cli-1",
		Frequency: entity.FrequencyMonthly, DayPolicy: "FIRST_CALENDAR_DAY",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}
	uc := newTemplateUC(db)

	_, err := uc.Update(context.Background(), "owner-1", "tpl-1", dto.UpdateTemplateRequest{
		ClientID:   "cli-1",
		Name:       "Cuota revisada",
		BaseAmount: decimal.NewFromInt(500),
		Frequency:  "MONTHLY",
		DayPolicy:  "FIRST_CALENDAR_DAY",
		StartDate:  "2026-01-01",
		Active:     true,
	})
	require.NoError(t, err)

	// La edición de plantilla no reescribe instantáneas ya generadas.
	assert.True(t, db.occurrences["occ-1"].BaseAmount.Equal(decimal.NewFromInt(300)))
}

func TestTemplateDelete_DesvinculaOcurrencias(t *testing.T) {
	db := newMemDB()
	seedClient(db)
	seedSeries(db)
	db.templates["tpl-1"] = &entity.RecurringTemplate{
		ID: "tpl-1", OwnerID: "owner-1", ClientID: "cli-1",
		Frequency: entity.FrequencyMonthly, DayPolicy: "FIRST_CALENDAR_DAY",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Active: true,
	}
	uc := newTemplateUC(db)

	res, err := uc.Delete(context.Background(), "owner-1", "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, 12, res.Detached)
	assert.NotContains(t, db.templates, "tpl-1")

	// Los borradores sobreviven como documentos sueltos.
	assert.Len(t, db.occurrences, 12)
	for _, occ := range db.occurrences {
		assert.Empty(t, occ.SeriesID)
	}
}
