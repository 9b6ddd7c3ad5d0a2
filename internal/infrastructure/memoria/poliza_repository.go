package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var _ repository.PolizaRepository = (*PolizaRepo)(nil)

// PolizaRepo pólizas en memoria.
type PolizaRepo struct {
	s *Store
	a acceso
}

// Create inserta la póliza. Número de póliza repetido → domain.ErrDuplicate.
func (r *PolizaRepo) Create(_ context.Context, p *entity.Poliza) error {
	if err := r.s.falla(OpPolizaCreate); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		if _, ok := e.polizas[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, x := range e.polizas {
			if x.NumeroPoliza == p.NumeroPoliza {
				return domain.ErrDuplicate
			}
		}
		e.polizas[p.ID] = *p
		return nil
	})
}

// Update reemplaza la póliza.
func (r *PolizaRepo) Update(_ context.Context, p *entity.Poliza) error {
	if err := r.s.falla(OpPolizaUpdate); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		if _, ok := e.polizas[p.ID]; !ok {
			return domain.ErrNotFound
		}
		e.polizas[p.ID] = *p
		return nil
	})
}

// GetByID nil si no existe.
func (r *PolizaRepo) GetByID(_ context.Context, id string) (*entity.Poliza, error) {
	var out *entity.Poliza
	err := r.a(func(e *estado) error {
		if p, ok := e.polizas[id]; ok {
			out = e.conTipo(p)
		}
		return nil
	})
	return out, err
}

// GetByNumero nil si no existe.
func (r *PolizaRepo) GetByNumero(_ context.Context, numero string) (*entity.Poliza, error) {
	var out *entity.Poliza
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if p.NumeroPoliza == numero {
				out = e.conTipo(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List pólizas que cumplen el filtro, más recientes primero.
func (r *PolizaRepo) List(_ context.Context, f repository.FiltroPolizas) ([]*entity.Poliza, error) {
	var out []*entity.Poliza
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if f.ClienteID != "" && p.ClienteID != f.ClienteID {
				continue
			}
			if f.EstadoCartera != "" && p.EstadoCartera != f.EstadoCartera {
				continue
			}
			if f.CompaniaID != "" && p.CompaniaID != f.CompaniaID {
				continue
			}
			out = append(out, e.conTipo(p))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].NumeroPoliza < out[j].NumeroPoliza
	})
	return out, err
}

// ListActivasMensuales pólizas ACTIVA en modo MENSUAL ordenadas por número.
func (r *PolizaRepo) ListActivasMensuales(_ context.Context) ([]*entity.Poliza, error) {
	if err := r.s.falla(OpPolizasActivasMensual); err != nil {
		return nil, err
	}
	var out []*entity.Poliza
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if p.Estado == entity.EstadoPolizaActiva && p.ModoPago == entity.ModoPagoMensual {
				out = append(out, e.conTipo(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroPoliza < out[j].NumeroPoliza })
	return out, err
}

// ListPorVencer pólizas ACTIVA con fecha fin en [desde, hasta] y el contacto del cliente.
func (r *PolizaRepo) ListPorVencer(_ context.Context, desde, hasta time.Time) ([]repository.PolizaPorVencer, error) {
	var out []repository.PolizaPorVencer
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if p.Estado != entity.EstadoPolizaActiva || p.FechaFin.Before(desde) || p.FechaFin.After(hasta) {
				continue
			}
			item := repository.PolizaPorVencer{Poliza: e.conTipo(p)}
			if u, ok := e.users[p.ClienteID]; ok {
				item.ClienteNombre = u.Name
				item.ClienteEmail = u.Email
			}
			out = append(out, item)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Poliza.FechaFin.Equal(out[j].Poliza.FechaFin) {
			return out[i].Poliza.FechaFin.Before(out[j].Poliza.FechaFin)
		}
		return out[i].Poliza.NumeroPoliza < out[j].Poliza.NumeroPoliza
	})
	return out, err
}

// ActualizarEstadoCartera escribe solo el estado de cartera.
func (r *PolizaRepo) ActualizarEstadoCartera(_ context.Context, polizaID, estadoCartera string) error {
	if err := r.s.falla(OpPolizaEstadoCartera); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		p, ok := e.polizas[polizaID]
		if !ok {
			return domain.ErrNotFound
		}
		p.EstadoCartera = estadoCartera
		p.UpdatedAt = time.Now()
		e.polizas[polizaID] = p
		return nil
	})
}

// conTipo completa la póliza con los datos de su tipo de seguro y su aseguradora, como los JOIN
// de Postgres.
func (e *estado) conTipo(p entity.Poliza) *entity.Poliza {
	if t, ok := e.tipos[p.TipoSeguroID]; ok {
		p.TipoSeguroNombre = t.Nombre
		p.PorcentajeIVA = t.PorcentajeIVA
		p.ComisionPorcentaje = t.ComisionPorcentaje
	}
	if c, ok := e.companias[p.CompaniaID]; ok {
		p.CompaniaNombre = c.Nombre
	}
	return &p
}
