package repository

import (
	"context"
	"time"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// PolizaPorVencer póliza activa próxima a vencer con los datos de contacto del cliente.
type PolizaPorVencer struct {
	Poliza        *entity.Poliza
	ClienteNombre string
	ClienteEmail  string
}

// FiltroPolizas criterios del listado; los campos vacíos no filtran.
type FiltroPolizas struct {
	ClienteID     string
	EstadoCartera string
	CompaniaID    string
}

// PolizaRepository define el puerto de persistencia para Poliza.
// Las lecturas traen PorcentajeIVA, ComisionPorcentaje y TipoSeguroNombre del tipo de seguro,
// y CompaniaNombre de la aseguradora.
type PolizaRepository interface {
	Create(ctx context.Context, p *entity.Poliza) error
	Update(ctx context.Context, p *entity.Poliza) error
	GetByID(ctx context.Context, id string) (*entity.Poliza, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Poliza, error)
	// List pólizas que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filtro FiltroPolizas) ([]*entity.Poliza, error)
	// ListActivasMensuales pólizas ACTIVA con modo MENSUAL (universo de la revisión de cartera).
	ListActivasMensuales(ctx context.Context) ([]*entity.Poliza, error)
	// ListPorVencer pólizas ACTIVA con fecha_fin en [desde, hasta].
	ListPorVencer(ctx context.Context, desde, hasta time.Time) ([]PolizaPorVencer, error)
	// ActualizarEstadoCartera escribe solo estado_cartera.
	ActualizarEstadoCartera(ctx context.Context, polizaID, estado string) error
}
