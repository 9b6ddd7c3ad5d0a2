package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.PolizaRepository = (*PolizaRepo)(nil)

// PolizaRepo implementación del puerto PolizaRepository sobre PostgreSQL (usable con pool o tx).
type PolizaRepo struct {
	q Querier
}

// NewPolizaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPolizaRepository(q Querier) *PolizaRepo {
	return &PolizaRepo{q: q}
}

const (
	polizaColumnas = `
		p.id, p.numero_poliza, p.cliente_id, p.tipo_seguro_id, t.nombre, p.compania_aseguradora_id, c.nombre,
		p.vehiculo_id, p.fecha_inicio, p.fecha_fin, p.valor_prima_sin_iva, t.porcentaje_iva, t.comision_porcentaje,
		p.modo_pago, p.plazo_meses, p.estado, p.estado_cartera, p.fecha_cancelacion, p.motivo_cancelacion,
		p.monto_devolucion, p.comision_devuelta, p.created_at, p.updated_at`
	polizaJoins = `
	FROM polizas p
	JOIN tipos_seguro t ON t.id = p.tipo_seguro_id
	JOIN companias_aseguradoras c ON c.id = p.compania_aseguradora_id`
	polizaSelect = `SELECT` + polizaColumnas + polizaJoins
)

func polizaDestinos(p *entity.Poliza) []any {
	return []any{
		&p.ID, &p.NumeroPoliza, &p.ClienteID, &p.TipoSeguroID, &p.TipoSeguroNombre, &p.CompaniaID, &p.CompaniaNombre,
		&p.VehiculoID, &p.FechaInicio, &p.FechaFin, &p.ValorPrimaSinIVA, &p.PorcentajeIVA, &p.ComisionPorcentaje,
		&p.ModoPago, &p.PlazoMeses, &p.Estado, &p.EstadoCartera, &p.FechaCancelacion, &p.MotivoCancelacion,
		&p.MontoDevolucion, &p.ComisionDevuelta, &p.CreatedAt, &p.UpdatedAt,
	}
}

func scanPoliza(row pgx.Row, p *entity.Poliza) error {
	return row.Scan(polizaDestinos(p)...)
}

// Create persiste una nueva póliza. Número repetido → domain.ErrDuplicate.
func (r *PolizaRepo) Create(ctx context.Context, p *entity.Poliza) error {
	query := `
		INSERT INTO polizas (id, numero_poliza, cliente_id, tipo_seguro_id, compania_aseguradora_id, vehiculo_id,
			fecha_inicio, fecha_fin, valor_prima_sin_iva, modo_pago, plazo_meses, estado, estado_cartera,
			fecha_cancelacion, motivo_cancelacion, monto_devolucion, comision_devuelta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.NumeroPoliza, p.ClienteID, p.TipoSeguroID, p.CompaniaID, p.VehiculoID, p.FechaInicio, p.FechaFin,
		p.ValorPrimaSinIVA, p.ModoPago, p.PlazoMeses, p.Estado, p.EstadoCartera, p.FechaCancelacion,
		p.MotivoCancelacion, p.MontoDevolucion, p.ComisionDevuelta, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return envolver("insert poliza", err)
	}
	return nil
}

// Update actualiza los campos editables. El modo de pago y el plazo no cambian después de crear.
func (r *PolizaRepo) Update(ctx context.Context, p *entity.Poliza) error {
	query := `
		UPDATE polizas SET vehiculo_id = $2, fecha_inicio = $3, fecha_fin = $4, valor_prima_sin_iva = $5,
			estado = $6, estado_cartera = $7, fecha_cancelacion = $8, motivo_cancelacion = $9,
			monto_devolucion = $10, comision_devuelta = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.VehiculoID, p.FechaInicio, p.FechaFin, p.ValorPrimaSinIVA,
		p.Estado, p.EstadoCartera, p.FechaCancelacion, p.MotivoCancelacion,
		p.MontoDevolucion, p.ComisionDevuelta, p.UpdatedAt,
	)
	if err != nil {
		return envolver("update poliza", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una póliza por ID.
func (r *PolizaRepo) GetByID(ctx context.Context, id string) (*entity.Poliza, error) {
	var p entity.Poliza
	if err := scanPoliza(r.q.QueryRow(ctx, polizaSelect+` WHERE p.id = $1`, id), &p); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get poliza", err)
	}
	return &p, nil
}

// GetByNumero obtiene una póliza por su número.
func (r *PolizaRepo) GetByNumero(ctx context.Context, numero string) (*entity.Poliza, error) {
	var p entity.Poliza
	if err := scanPoliza(r.q.QueryRow(ctx, polizaSelect+` WHERE p.numero_poliza = $1`, numero), &p); err != nil {
		if sinFilas(err) {
			return nil, nil
		}
		return nil, envolver("get poliza by numero", err)
	}
	return &p, nil
}

// List pólizas que cumplen el filtro, más recientes primero. Los campos vacíos del filtro no aplican.
func (r *PolizaRepo) List(ctx context.Context, f repository.FiltroPolizas) ([]*entity.Poliza, error) {
	query := polizaSelect + `
		WHERE ($1 = '' OR p.cliente_id::text = $1)
			AND ($2 = '' OR p.estado_cartera = $2)
			AND ($3 = '' OR p.compania_aseguradora_id::text = $3)
		ORDER BY p.created_at DESC, p.numero_poliza`
	return r.listar(ctx, "list polizas", query, f.ClienteID, f.EstadoCartera, f.CompaniaID)
}

// ListActivasMensuales pólizas ACTIVA en modo MENSUAL.
func (r *PolizaRepo) ListActivasMensuales(ctx context.Context) ([]*entity.Poliza, error) {
	query := polizaSelect + `
		WHERE p.estado = $1 AND p.modo_pago = $2
		ORDER BY p.numero_poliza`
	return r.listar(ctx, "list polizas mensuales", query, entity.EstadoPolizaActiva, entity.ModoPagoMensual)
}

func (r *PolizaRepo) listar(ctx context.Context, op, query string, args ...any) ([]*entity.Poliza, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, envolver(op, err)
	}
	defer rows.Close()
	var list []*entity.Poliza
	for rows.Next() {
		var p entity.Poliza
		if err := scanPoliza(rows, &p); err != nil {
			return nil, envolver("scan poliza", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListPorVencer pólizas ACTIVA con fecha_fin en [desde, hasta] junto al contacto del cliente.
func (r *PolizaRepo) ListPorVencer(ctx context.Context, desde, hasta time.Time) ([]repository.PolizaPorVencer, error) {
	query := `SELECT` + polizaColumnas + `, u.name, u.email` + polizaJoins + `
		JOIN users u ON u.id = p.cliente_id
		WHERE p.estado = $1 AND p.fecha_fin BETWEEN $2 AND $3
		ORDER BY p.fecha_fin, p.numero_poliza`
	rows, err := r.q.Query(ctx, query, entity.EstadoPolizaActiva, desde, hasta)
	if err != nil {
		return nil, envolver("list polizas por vencer", err)
	}
	defer rows.Close()
	var list []repository.PolizaPorVencer
	for rows.Next() {
		var p entity.Poliza
		var item repository.PolizaPorVencer
		if err := rows.Scan(append(polizaDestinos(&p), &item.ClienteNombre, &item.ClienteEmail)...); err != nil {
			return nil, envolver("scan poliza por vencer", err)
		}
		item.Poliza = &p
		list = append(list, item)
	}
	return list, rows.Err()
}

// ActualizarEstadoCartera escribe solo estado_cartera.
func (r *PolizaRepo) ActualizarEstadoCartera(ctx context.Context, polizaID, estado string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE polizas SET estado_cartera = $2, updated_at = now() WHERE id = $1`,
		polizaID, estado,
	)
	if err != nil {
		return envolver("update estado cartera", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
