package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de TemplateRepository (usable con pool o tx).
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `
	id, owner_id, client_id, name, description,
	base_amount, vat_rate, withholding_rate,
	frequency, day_policy, specific_day,
	start_date, end_date, active, created_at, updated_at`

// Create persiste una plantilla recurrente.
func (r *TemplateRepo) Create(tpl *entity.RecurringTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recurring_templates (id, owner_id, client_id, name, description,
			base_amount, vat_rate, withholding_rate,
			frequency, day_policy, specific_day,
			start_date, end_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		tpl.ID, tpl.OwnerID, tpl.ClientID, tpl.Name, nullIfEmpty(tpl.Description),
		tpl.BaseAmount, tpl.VATRate, tpl.WithholdingRate,
		tpl.Frequency, tpl.DayPolicy, tpl.SpecificDay,
		tpl.StartDate, tpl.EndDate, tpl.Active, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("template already exists: %w", err)
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// Update actualiza todos los campos editables de la plantilla.
func (r *TemplateRepo) Update(tpl *entity.RecurringTemplate) error {
	query := `
		UPDATE recurring_templates
		SET client_id        = $2,
		    name             = $3,
		    description      = $4,
		    base_amount      = $5,
		    vat_rate         = $6,
		    withholding_rate = $7,
		    frequency        = $8,
		    day_policy       = $9,
		    specific_day     = $10,
		    start_date       = $11,
		    end_date         = $12,
		    active           = $13,
		    updated_at       = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tpl.ID, tpl.ClientID, tpl.Name, nullIfEmpty(tpl.Description),
		tpl.BaseAmount, tpl.VATRate, tpl.WithholdingRate,
		tpl.Frequency, tpl.DayPolicy, tpl.SpecificDay,
		tpl.StartDate, tpl.EndDate, tpl.Active, tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete elimina la plantilla. El desvínculo de sus ocurrencias lo hace el
// caso de uso antes de llamar aquí, dentro de la misma transacción.
func (r *TemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recurring_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *TemplateRepo) GetByID(id string) (*entity.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM recurring_templates WHERE id = $1`
	tpl, err := scanTemplate(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return tpl, nil
}

// ListByOwner lista las plantillas del propietario, más recientes primero.
func (r *TemplateRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	return collectTemplates(rows)
}

// ListActive devuelve las plantillas activas de todos los propietarios
// (barrido del job de generación).
func (r *TemplateRepo) ListActive() ([]*entity.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM recurring_templates
		WHERE active
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active templates: %w", err)
	}
	defer rows.Close()
	return collectTemplates(rows)
}

func collectTemplates(rows pgx.Rows) ([]*entity.RecurringTemplate, error) {
	var list []*entity.RecurringTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, tpl)
	}
	return list, rows.Err()
}

func scanTemplate(row pgx.Row) (*entity.RecurringTemplate, error) {
	var tpl entity.RecurringTemplate
	var description *string
	err := row.Scan(
		&tpl.ID, &tpl.OwnerID, &tpl.ClientID, &tpl.Name, &description,
		&tpl.BaseAmount, &tpl.VATRate, &tpl.WithholdingRate,
		&tpl.Frequency, &tpl.DayPolicy, &tpl.SpecificDay,
		&tpl.StartDate, &tpl.EndDate, &tpl.Active, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tpl.Description = derefStr(description)
	return &tpl, nil
}
