package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ComisionCompania total de comisiones de una aseguradora en un periodo.
type ComisionCompania struct {
	CompaniaID     string
	CompaniaNombre string
	Pendiente      decimal.Decimal
	Liquidada      decimal.Decimal
}

// ReporteRepository consultas agregadas para reportes de gestión.
type ReporteRepository interface {
	ContarPolizasNuevas(ctx context.Context, desde, hasta time.Time) (int, error)
	ContarPolizasEnMora(ctx context.Context) (int, error)
	ContarPolizasActivas(ctx context.Context) (int, error)
	ContarClientes(ctx context.Context) (int, error)
	// ComisionesPorCompania suma los registros de comisión con fecha_pago en [desde, hasta]
	// agrupados por aseguradora, mayor total primero.
	ComisionesPorCompania(ctx context.Context, desde, hasta time.Time) ([]ComisionCompania, error)
}
