package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assecol/seguros-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El savepoint entregado a fn abre una tx anidada (SAVEPOINT): si falla, solo se revierte lo
// hecho dentro de ella y la tx externa sigue utilizable.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos, savepoint ports.Savepoint) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposEn(tx), savepointEn(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func savepointEn(tx pgx.Tx) ports.Savepoint {
	return func(ctx context.Context, fn func(repos ports.Repos) error) error {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return fmt.Errorf("savepoint: %w", err)
		}
		defer func() { _ = sp.Rollback(ctx) }()
		if err := fn(reposEn(sp)); err != nil {
			return err
		}
		if err := sp.Commit(ctx); err != nil {
			return fmt.Errorf("release savepoint: %w", err)
		}
		return nil
	}
}

// Repos repositorios sobre el pool (fuera de transacción).
func Repos(pool *pgxpool.Pool) ports.Repos {
	return reposEn(pool)
}

func reposEn(q Querier) ports.Repos {
	return ports.Repos{
		Polizas:     NewPolizaRepository(q),
		Cuotas:      NewCuotaRepository(q),
		Pagos:       NewPagoRepository(q),
		Vehiculos:   NewVehiculoRepository(q),
		TiposSeguro: NewTipoSeguroRepository(q),
		Companias:   NewCompaniaRepository(q),
		Siniestros:  NewSiniestroRepository(q),
	}
}
