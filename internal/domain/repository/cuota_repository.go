package repository

import (
	"context"
	"time"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// CuotaRepository define el puerto de persistencia para Cuota.
type CuotaRepository interface {
	// CreateBatch inserta todas las cuotas o ninguna. (poliza, numero_cuota) duplicado → domain.ErrDuplicate.
	CreateBatch(ctx context.Context, cuotas []*entity.Cuota) error
	GetByID(ctx context.Context, id string) (*entity.Cuota, error)
	ListByPoliza(ctx context.Context, polizaID string) ([]*entity.Cuota, error)
	UpdateEstado(ctx context.Context, id, estado string) error
	// MarcarVencidasEnMora pasa a EN_MORA, en una sola sentencia, las cuotas PENDIENTE de la
	// póliza con vencimiento anterior a asOf. Devuelve cuántas cambiaron.
	MarcarVencidasEnMora(ctx context.Context, polizaID string, asOf time.Time) (int64, error)
	ExisteEnMora(ctx context.Context, polizaID string) (bool, error)
}
