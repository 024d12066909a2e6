package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anayu15/mi-gestor-sub002/internal/application/recurring"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
)

var _ recurring.SeriesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSeries inicia una transacción, ejecuta fn con los repos de plantillas y
// ocurrencias atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSeries(ctx context.Context, fn func(
	tplRepo repository.TemplateRepository,
	occRepo repository.OccurrenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tplRepo := NewTemplateRepository(tx)
	occRepo := NewOccurrenceRepository(tx)

	if err := fn(tplRepo, occRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
