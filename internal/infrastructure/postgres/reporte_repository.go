package postgres

import (
	"context"
	"time"

	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas agregadas de gestión.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// ContarPolizasNuevas pólizas con fecha_inicio en [desde, hasta].
func (r *ReporteRepo) ContarPolizasNuevas(ctx context.Context, desde, hasta time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM polizas WHERE fecha_inicio BETWEEN $1 AND $2`, desde, hasta,
	).Scan(&n); err != nil {
		return 0, envolver("contar polizas nuevas", err)
	}
	return n, nil
}

// ContarPolizasEnMora pólizas ACTIVA con cartera EN_MORA.
func (r *ReporteRepo) ContarPolizasEnMora(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM polizas WHERE estado = $1 AND estado_cartera = $2`,
		entity.EstadoPolizaActiva, entity.EstadoCarteraEnMora,
	).Scan(&n); err != nil {
		return 0, envolver("contar polizas en mora", err)
	}
	return n, nil
}

// ContarPolizasActivas pólizas en estado ACTIVA.
func (r *ReporteRepo) ContarPolizasActivas(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM polizas WHERE estado = $1`, entity.EstadoPolizaActiva,
	).Scan(&n); err != nil {
		return 0, envolver("contar polizas activas", err)
	}
	return n, nil
}

// ContarClientes usuarios con rol cliente.
func (r *ReporteRepo) ContarClientes(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, entity.RoleCliente,
	).Scan(&n); err != nil {
		return 0, envolver("contar clientes", err)
	}
	return n, nil
}

// ComisionesPorCompania registros de comisión con fecha_pago en [desde, hasta] por aseguradora.
func (r *ReporteRepo) ComisionesPorCompania(ctx context.Context, desde, hasta time.Time) ([]repository.ComisionCompania, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.nombre,
			COALESCE(SUM(pg.monto_pagado) FILTER (WHERE pg.estado_comision = $3), 0) AS pendiente,
			COALESCE(SUM(pg.monto_pagado) FILTER (WHERE pg.estado_comision = $4), 0) AS liquidada
		FROM pagos pg
		JOIN polizas p ON p.id = pg.poliza_id
		JOIN companias_aseguradoras c ON c.id = p.compania_aseguradora_id
		WHERE pg.cuota_id IS NULL AND pg.fecha_pago BETWEEN $1 AND $2
		GROUP BY c.id, c.nombre
		ORDER BY SUM(pg.monto_pagado) DESC, c.nombre`,
		desde, hasta, entity.EstadoComisionPendiente, entity.EstadoComisionLiquidada,
	)
	if err != nil {
		return nil, envolver("comisiones por compania", err)
	}
	defer rows.Close()
	var list []repository.ComisionCompania
	for rows.Next() {
		var c repository.ComisionCompania
		if err := rows.Scan(&c.CompaniaID, &c.CompaniaNombre, &c.Pendiente, &c.Liquidada); err != nil {
			return nil, envolver("scan comisiones por compania", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
