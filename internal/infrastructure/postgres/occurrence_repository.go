package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

var _ repository.OccurrenceRepository = (*OccurrenceRepo)(nil)

// OccurrenceRepo implementación de OccurrenceRepository, el almacén de
// documentos de las series (usable con pool o tx). series_id es NULL cuando
// la ocurrencia está desvinculada.
type OccurrenceRepo struct {
	q Querier
}

// NewOccurrenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOccurrenceRepository(q Querier) *OccurrenceRepo {
	return &OccurrenceRepo{q: q}
}

const occurrenceColumns = `
	id, series_id, owner_id, client_id, name, due_date,
	base_amount, vat_rate, withholding_rate, status, created_at, updated_at`

// Create persiste una ocurrencia. El índice único (series_id, due_date)
// respalda en BD el contrato create-or-skip del materializador.
func (r *OccurrenceRepo) Create(occ *entity.Occurrence) error {
	if occ.ID == "" {
		occ.ID = uuid.New().String()
	}
	query := `
		INSERT INTO occurrences (id, series_id, owner_id, client_id, name, due_date,
			base_amount, vat_rate, withholding_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		occ.ID, nullIfEmpty(occ.SeriesID), occ.OwnerID, occ.ClientID, occ.Name, occ.DueDate,
		occ.BaseAmount, occ.VATRate, occ.WithholdingRate, occ.Status, occ.CreatedAt, occ.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("occurrence already materialized for due date: %w", err)
		}
		return fmt.Errorf("insert occurrence: %w", err)
	}
	return nil
}

// GetByID obtiene una ocurrencia por ID.
func (r *OccurrenceRepo) GetByID(id string) (*entity.Occurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM occurrences WHERE id = $1`
	occ, err := scanOccurrence(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get occurrence: %w", err)
	}
	return occ, nil
}

// ListBySeries lista las ocurrencias aún vinculadas a la serie, por vencimiento.
func (r *OccurrenceRepo) ListBySeries(seriesID string) ([]*entity.Occurrence, error) {
	query := `SELECT ` + occurrenceColumns + `
		FROM occurrences WHERE series_id = $1 ORDER BY due_date`
	rows, err := r.q.Query(context.Background(), query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("list occurrences: %w", err)
	}
	defer rows.Close()
	var list []*entity.Occurrence
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		list = append(list, occ)
	}
	return list, rows.Err()
}

// ExistingDueDates devuelve los vencimientos ya materializados de la serie,
// normalizados a medianoche UTC (misma normalización que el generador).
func (r *OccurrenceRepo) ExistingDueDates(seriesID string) (map[time.Time]bool, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT due_date FROM occurrences WHERE series_id = $1`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("existing due dates: %w", err)
	}
	defer rows.Close()
	existing := make(map[time.Time]bool)
	for rows.Next() {
		var due time.Time
		if err := rows.Scan(&due); err != nil {
			return nil, fmt.Errorf("scan due date: %w", err)
		}
		due = due.UTC()
		existing[time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)] = true
	}
	return existing, rows.Err()
}

// CountByFilter cuenta las ocurrencias que alcanza el filtro.
func (r *OccurrenceRepo) CountByFilter(f *schedule.SeriesFilter) (int, error) {
	where, args := filterClause(f, 0)
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM occurrences WHERE `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count occurrences: %w", err)
	}
	return n, nil
}

// UpdateByFilter aplica el parche (y el desvínculo si f.Detach) en un solo
// UPDATE; devuelve las filas afectadas.
func (r *OccurrenceRepo) UpdateByFilter(f *schedule.SeriesFilter, patch *repository.OccurrencePatch, now time.Time) (int, error) {
	sets := []string{}
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch != nil {
		if patch.Name != nil {
			addSet("name", *patch.Name)
		}
		if patch.BaseAmount != nil {
			addSet("base_amount", *patch.BaseAmount)
		}
		if patch.VATRate != nil {
			addSet("vat_rate", *patch.VATRate)
		}
		if patch.WithholdingRate != nil {
			addSet("withholding_rate", *patch.WithholdingRate)
		}
		if patch.Status != nil {
			addSet("status", *patch.Status)
		}
	}
	if f.Detach {
		sets = append(sets, "series_id = NULL")
	}
	addSet("updated_at", now)

	where, whereArgs := filterClause(f, len(args))
	args = append(args, whereArgs...)
	query := `UPDATE occurrences SET ` + strings.Join(sets, ", ") + ` WHERE ` + where
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return 0, fmt.Errorf("update occurrences: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByFilter elimina las ocurrencias del filtro; devuelve cuántas.
func (r *OccurrenceRepo) DeleteByFilter(f *schedule.SeriesFilter) (int, error) {
	where, args := filterClause(f, 0)
	tag, err := r.q.Exec(context.Background(), `DELETE FROM occurrences WHERE `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete occurrences: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DetachSeries anula el vínculo de serie de toda la serie (borrado de plantilla).
func (r *OccurrenceRepo) DetachSeries(seriesID string, now time.Time) (int, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE occurrences SET series_id = NULL, updated_at = $2 WHERE series_id = $1`,
		seriesID, now)
	if err != nil {
		return 0, fmt.Errorf("detach series: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// filterClause traduce el SeriesFilter a SQL. offset es cuántos placeholders
// ya consumió el caller. Los filtros de lote solo alcanzan filas con
// series_id no nulo: las desvinculadas quedan fuera por construcción.
func filterClause(f *schedule.SeriesFilter, offset int) (string, []any) {
	if f.Single() {
		return fmt.Sprintf("id = $%d", offset+1), []any{f.OccurrenceID}
	}
	where := fmt.Sprintf("series_id = $%d", offset+1)
	args := []any{f.SeriesID}
	if f.From != nil {
		where += fmt.Sprintf(" AND due_date >= $%d", offset+2)
		args = append(args, *f.From)
	}
	return where, args
}

func scanOccurrence(row pgx.Row) (*entity.Occurrence, error) {
	var occ entity.Occurrence
	var seriesID *string
	err := row.Scan(
		&occ.ID, &seriesID, &occ.OwnerID, &occ.ClientID, &occ.Name, &occ.DueDate,
		&occ.BaseAmount, &occ.VATRate, &occ.WithholdingRate, &occ.Status,
		&occ.CreatedAt, &occ.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	occ.SeriesID = derefStr(seriesID)
	return &occ, nil
}
