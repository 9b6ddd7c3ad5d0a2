package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// TotalesComision suma de registros de comisión por estado de liquidación.
type TotalesComision struct {
	Pendiente decimal.Decimal
	Liquidada decimal.Decimal
}

// PagoRepository define el puerto de persistencia para Pago.
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	GetByID(ctx context.Context, id string) (*entity.Pago, error)
	// GetRegistroComision devuelve el pago sin cuota de la póliza, o nil si no existe.
	GetRegistroComision(ctx context.Context, polizaID string) (*entity.Pago, error)
	ListByPoliza(ctx context.Context, polizaID string) ([]*entity.Pago, error)
	UpdateMonto(ctx context.Context, id string, monto decimal.Decimal) error
	UpdateEstadoComision(ctx context.Context, id, estado string) error
	UpdateComprobante(ctx context.Context, id, key string) error
	// TotalesComisionEntre suma los registros de comisión con fecha_pago en [desde, hasta].
	TotalesComisionEntre(ctx context.Context, desde, hasta time.Time) (TotalesComision, error)
}
