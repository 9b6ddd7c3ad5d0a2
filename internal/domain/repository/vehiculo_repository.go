package repository

import (
	"context"
	"time"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// VehiculoRepository define el puerto de persistencia para Vehiculo.
type VehiculoRepository interface {
	Create(ctx context.Context, v *entity.Vehiculo) error
	GetByID(ctx context.Context, id string) (*entity.Vehiculo, error)
	ListByCliente(ctx context.Context, clienteID string) ([]*entity.Vehiculo, error)
	ActualizarRecordatorioSOAT(ctx context.Context, id string, fecha time.Time) error
	// ListSOATPorVencer vehículos cuyo recordatorio SOAT cae en [desde, hasta], por fecha.
	ListSOATPorVencer(ctx context.Context, desde, hasta time.Time) ([]*entity.Vehiculo, error)
}
