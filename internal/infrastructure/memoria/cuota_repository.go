package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.CuotaRepository = (*CuotaRepo)(nil)

// CuotaRepo cuotas en memoria.
type CuotaRepo struct {
	s *Store
	a acceso
}

// CreateBatch valida la unicidad (poliza, numero_cuota) de todo el lote antes de insertar.
func (r *CuotaRepo) CreateBatch(_ context.Context, cuotas []*entity.Cuota) error {
	if err := r.s.falla(OpCuotasCreateBatch); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		type clave struct {
			poliza string
			numero int
		}
		usadas := map[clave]bool{}
		for _, c := range e.cuotas {
			usadas[clave{c.PolizaID, c.NumeroCuota}] = true
		}
		for _, c := range cuotas {
			if _, ok := e.polizas[c.PolizaID]; !ok {
				return domain.ErrNotFound
			}
			k := clave{c.PolizaID, c.NumeroCuota}
			if usadas[k] {
				return domain.ErrDuplicate
			}
			usadas[k] = true
		}
		for _, c := range cuotas {
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			e.cuotas[c.ID] = *c
		}
		return nil
	})
}

// GetByID nil si no existe.
func (r *CuotaRepo) GetByID(_ context.Context, id string) (*entity.Cuota, error) {
	var out *entity.Cuota
	err := r.a(func(e *estado) error {
		if c, ok := e.cuotas[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// ListByPoliza cuotas de la póliza ordenadas por número.
func (r *CuotaRepo) ListByPoliza(_ context.Context, polizaID string) ([]*entity.Cuota, error) {
	var out []*entity.Cuota
	err := r.a(func(e *estado) error {
		for _, c := range e.cuotas {
			if c.PolizaID == polizaID {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroCuota < out[j].NumeroCuota })
	return out, err
}

// UpdateEstado cambia el estado de la cuota.
func (r *CuotaRepo) UpdateEstado(_ context.Context, id, estadoCuota string) error {
	return r.a(func(e *estado) error {
		c, ok := e.cuotas[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.Estado = estadoCuota
		e.cuotas[id] = c
		return nil
	})
}

// MarcarVencidasEnMora pasa a EN_MORA las cuotas PENDIENTE vencidas antes de asOf.
func (r *CuotaRepo) MarcarVencidasEnMora(_ context.Context, polizaID string, asOf time.Time) (int64, error) {
	if err := r.s.falla(OpCuotasMarcarEnMora); err != nil {
		return 0, err
	}
	var n int64
	err := r.a(func(e *estado) error {
		for id, c := range e.cuotas {
			if c.PolizaID == polizaID && c.Estado == entity.EstadoCuotaPendiente && c.FechaVencimiento.Before(asOf) {
				c.Estado = entity.EstadoCuotaEnMora
				e.cuotas[id] = c
				n++
			}
		}
		return nil
	})
	return n, err
}

// ExisteEnMora indica si la póliza tiene al menos una cuota EN_MORA.
func (r *CuotaRepo) ExisteEnMora(_ context.Context, polizaID string) (bool, error) {
	var existe bool
	err := r.a(func(e *estado) error {
		for _, c := range e.cuotas {
			if c.PolizaID == polizaID && c.Estado == entity.EstadoCuotaEnMora {
				existe = true
				return nil
			}
		}
		return nil
	})
	return existe, err
}
