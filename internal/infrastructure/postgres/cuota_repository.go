package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.CuotaRepository = (*CuotaRepo)(nil)

// CuotaRepo implementación del puerto CuotaRepository sobre PostgreSQL.
type CuotaRepo struct {
	q Querier
}

// NewCuotaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuotaRepository(q Querier) *CuotaRepo {
	return &CuotaRepo{q: q}
}

const cuotaSelect = `SELECT id, poliza_id, numero_cuota, fecha_vencimiento, monto_cuota, estado FROM cuotas`

// CreateBatch inserta el plan en un solo batch; el batch corre en una transacción implícita,
// así que un (poliza_id, numero_cuota) repetido revierte todas las filas.
func (r *CuotaRepo) CreateBatch(ctx context.Context, cuotas []*entity.Cuota) error {
	if len(cuotas) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, c := range cuotas {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		b.Queue(`
			INSERT INTO cuotas (id, poliza_id, numero_cuota, fecha_vencimiento, monto_cuota, estado)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.PolizaID, c.NumeroCuota, c.FechaVencimiento, c.MontoCuota, c.Estado,
		)
	}
	br := r.q.SendBatch(ctx, b)
	for range cuotas {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return envolver("insert cuotas", err)
		}
	}
	if err := br.Close(); err != nil {
		return envolver("insert cuotas", err)
	}
	return nil
}

// GetByID obtiene una cuota por ID.
func (r *CuotaRepo) GetByID(ctx context.Context, id string) (*entity.Cuota, error) {
	var c entity.Cuota
	err := r.q.QueryRow(ctx, cuotaSelect+` WHERE id = $1`, id).Scan(
		&c.ID, &c.PolizaID, &c.NumeroCuota, &c.FechaVencimiento, &c.MontoCuota, &c.Estado,
	)
	if err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get cuota", err)
	}
	return &c, nil
}

// ListByPoliza cuotas de la póliza por número.
func (r *CuotaRepo) ListByPoliza(ctx context.Context, polizaID string) ([]*entity.Cuota, error) {
	rows, err := r.q.Query(ctx, cuotaSelect+` WHERE poliza_id = $1 ORDER BY numero_cuota`, polizaID)
	if err != nil {
		return nil, envolver("list cuotas", err)
	}
	defer rows.Close()
	var list []*entity.Cuota
	for rows.Next() {
		var c entity.Cuota
		if err := rows.Scan(&c.ID, &c.PolizaID, &c.NumeroCuota, &c.FechaVencimiento, &c.MontoCuota, &c.Estado); err != nil {
			return nil, envolver("scan cuota", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de una cuota.
func (r *CuotaRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE cuotas SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return envolver("update estado cuota", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarcarVencidasEnMora una sola sentencia UPDATE sobre las cuotas PENDIENTE vencidas.
func (r *CuotaRepo) MarcarVencidasEnMora(ctx context.Context, polizaID string, asOf time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE cuotas SET estado = $3
		WHERE poliza_id = $1 AND estado = $4 AND fecha_vencimiento < $2`,
		polizaID, asOf, entity.EstadoCuotaEnMora, entity.EstadoCuotaPendiente,
	)
	if err != nil {
		return 0, envolver("marcar cuotas en mora", err)
	}
	return cmd.RowsAffected(), nil
}

// ExisteEnMora indica si la póliza tiene cuotas EN_MORA.
func (r *CuotaRepo) ExisteEnMora(ctx context.Context, polizaID string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cuotas WHERE poliza_id = $1 AND estado = $2)`,
		polizaID, entity.EstadoCuotaEnMora,
	).Scan(&existe)
	if err != nil {
		return false, envolver("existe cuota en mora", err)
	}
	return existe, nil
}
