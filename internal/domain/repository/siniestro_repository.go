package repository

import (
	"context"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// FiltroSiniestros criterios del listado; los campos vacíos no filtran.
type FiltroSiniestros struct {
	PolizaID  string
	ClienteID string
	Estado    string
}

// TipoSiniestroRepository catálogo de tipos y subtipos de siniestro.
type TipoSiniestroRepository interface {
	// CreateTipo nombre repetido → domain.ErrDuplicate.
	CreateTipo(ctx context.Context, t *entity.TipoSiniestro) error
	// CreateSubtipo (tipo, nombre) repetido → domain.ErrDuplicate.
	CreateSubtipo(ctx context.Context, s *entity.SubtipoSiniestro) error
	GetSubtipo(ctx context.Context, id string) (*entity.SubtipoSiniestro, error)
	// List tipos por nombre, cada uno con sus subtipos.
	List(ctx context.Context) ([]*entity.TipoSiniestro, error)
}

// SiniestroRepository define el puerto de persistencia para Siniestro y sus adjuntos.
// Las lecturas traen NumeroPoliza y ClienteID de la póliza y los subtipos afectados.
type SiniestroRepository interface {
	// Create guarda el siniestro y sus vínculos con s.Subtipos.
	Create(ctx context.Context, s *entity.Siniestro) error
	GetByID(ctx context.Context, id string) (*entity.Siniestro, error)
	// List siniestros que cumplen el filtro, fecha del siniestro más reciente primero.
	List(ctx context.Context, filtro FiltroSiniestros) ([]*entity.Siniestro, error)
	// ActualizarEstado escribe solo estado y updated_at.
	ActualizarEstado(ctx context.Context, id, estado string) error
	AgregarAdjunto(ctx context.Context, a *entity.AdjuntoSiniestro) error
	ListAdjuntos(ctx context.Context, siniestroID string) ([]*entity.AdjuntoSiniestro, error)
}
