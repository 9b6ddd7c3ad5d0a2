package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

const pagoSelect = `
	SELECT id, poliza_id, cuota_id, fecha_pago, monto_pagado, estado_comision, notas, comprobante_key, created_at, updated_at
	FROM pagos`

func scanPago(row pgx.Row, p *entity.Pago) error {
	return row.Scan(&p.ID, &p.PolizaID, &p.CuotaID, &p.FechaPago, &p.MontoPagado, &p.EstadoComision,
		&p.Notas, &p.ComprobanteKey, &p.CreatedAt, &p.UpdatedAt)
}

// Create persiste un pago. Un segundo registro de comisión para la póliza viola el índice
// único parcial y se devuelve domain.ErrDuplicate.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pagos (id, poliza_id, cuota_id, fecha_pago, monto_pagado, estado_comision, notas, comprobante_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PolizaID, p.CuotaID, p.FechaPago, p.MontoPagado, p.EstadoComision,
		p.Notas, p.ComprobanteKey, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return envolver("insert pago", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PagoRepo) GetByID(ctx context.Context, id string) (*entity.Pago, error) {
	var p entity.Pago
	if err := scanPago(r.q.QueryRow(ctx, pagoSelect+` WHERE id = $1`, id), &p); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get pago", err)
	}
	return &p, nil
}

// GetRegistroComision pago sin cuota de la póliza, o nil.
func (r *PagoRepo) GetRegistroComision(ctx context.Context, polizaID string) (*entity.Pago, error) {
	var p entity.Pago
	if err := scanPago(r.q.QueryRow(ctx, pagoSelect+` WHERE poliza_id = $1 AND cuota_id IS NULL`, polizaID), &p); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get registro comision", err)
	}
	return &p, nil
}

// ListByPoliza pagos de la póliza por fecha.
func (r *PagoRepo) ListByPoliza(ctx context.Context, polizaID string) ([]*entity.Pago, error) {
	rows, err := r.q.Query(ctx, pagoSelect+` WHERE poliza_id = $1 ORDER BY fecha_pago, created_at`, polizaID)
	if err != nil {
		return nil, envolver("list pagos", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := scanPago(rows, &p); err != nil {
			return nil, envolver("scan pago", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateMonto cambia solo el monto (el estado de liquidación no se toca).
func (r *PagoRepo) UpdateMonto(ctx context.Context, id string, monto decimal.Decimal) error {
	return r.exec(ctx, "update monto pago", `UPDATE pagos SET monto_pagado = $2, updated_at = now() WHERE id = $1`, id, monto)
}

// UpdateEstadoComision cambia el estado de liquidación.
func (r *PagoRepo) UpdateEstadoComision(ctx context.Context, id, estado string) error {
	return r.exec(ctx, "update estado comision", `UPDATE pagos SET estado_comision = $2, updated_at = now() WHERE id = $1`, id, estado)
}

// UpdateComprobante guarda la llave del comprobante.
func (r *PagoRepo) UpdateComprobante(ctx context.Context, id, key string) error {
	return r.exec(ctx, "update comprobante", `UPDATE pagos SET comprobante_key = $2, updated_at = now() WHERE id = $1`, id, key)
}

func (r *PagoRepo) exec(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return envolver(op, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TotalesComisionEntre suma los registros de comisión por estado con fecha_pago en [desde, hasta].
func (r *PagoRepo) TotalesComisionEntre(ctx context.Context, desde, hasta time.Time) (repository.TotalesComision, error) {
	t := repository.TotalesComision{}
	err := r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(monto_pagado) FILTER (WHERE estado_comision = $3), 0),
			COALESCE(SUM(monto_pagado) FILTER (WHERE estado_comision = $4), 0)
		FROM pagos
		WHERE cuota_id IS NULL AND fecha_pago BETWEEN $1 AND $2`,
		desde, hasta, entity.EstadoComisionPendiente, entity.EstadoComisionLiquidada,
	).Scan(&t.Pendiente, &t.Liquidada)
	if err != nil {
		return t, envolver("totales comision", err)
	}
	return t, nil
}
