package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

var (
	_ repository.VehiculoRepository   = (*VehiculoRepo)(nil)
	_ repository.TipoSeguroRepository = (*TipoSeguroRepo)(nil)
	_ repository.CompaniaRepository   = (*CompaniaRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.ReporteRepository    = (*ReporteRepo)(nil)
)

// VehiculoRepo vehículos en memoria.
type VehiculoRepo struct {
	s *Store
	a acceso
}

// Create inserta el vehículo. Placa repetida → domain.ErrDuplicate.
func (r *VehiculoRepo) Create(_ context.Context, v *entity.Vehiculo) error {
	return r.a(func(e *estado) error {
		for _, x := range e.vehiculos {
			if x.Placa == v.Placa {
				return domain.ErrDuplicate
			}
		}
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		e.vehiculos[v.ID] = *v
		return nil
	})
}

// GetByID nil si no existe.
func (r *VehiculoRepo) GetByID(_ context.Context, id string) (*entity.Vehiculo, error) {
	var out *entity.Vehiculo
	err := r.a(func(e *estado) error {
		if v, ok := e.vehiculos[id]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

// ListByCliente vehículos del cliente ordenados por placa.
func (r *VehiculoRepo) ListByCliente(_ context.Context, clienteID string) ([]*entity.Vehiculo, error) {
	var out []*entity.Vehiculo
	err := r.a(func(e *estado) error {
		for _, v := range e.vehiculos {
			if v.ClienteID == clienteID {
				v := v
				out = append(out, &v)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Placa < out[j].Placa })
	return out, err
}

// ActualizarRecordatorioSOAT fija la fecha del recordatorio SOAT del vehículo.
func (r *VehiculoRepo) ActualizarRecordatorioSOAT(_ context.Context, id string, fecha time.Time) error {
	if err := r.s.falla(OpVehiculoRecordatorio); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		v, ok := e.vehiculos[id]
		if !ok {
			return domain.ErrNotFound
		}
		f := fecha
		v.SOATVencimientoRecordatorio = &f
		e.vehiculos[id] = v
		return nil
	})
}

// ListSOATPorVencer vehículos con recordatorio SOAT en [desde, hasta], por fecha y placa.
func (r *VehiculoRepo) ListSOATPorVencer(_ context.Context, desde, hasta time.Time) ([]*entity.Vehiculo, error) {
	var out []*entity.Vehiculo
	err := r.a(func(e *estado) error {
		for _, v := range e.vehiculos {
			f := v.SOATVencimientoRecordatorio
			if f == nil || f.Before(desde) || f.After(hasta) {
				continue
			}
			v := v
			out = append(out, &v)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		fi, fj := *out[i].SOATVencimientoRecordatorio, *out[j].SOATVencimientoRecordatorio
		if !fi.Equal(fj) {
			return fi.Before(fj)
		}
		return out[i].Placa < out[j].Placa
	})
	return out, err
}

// TipoSeguroRepo tipos de seguro en memoria.
type TipoSeguroRepo struct {
	s *Store
	a acceso
}

// Create inserta el tipo. Nombre repetido → domain.ErrDuplicate.
func (r *TipoSeguroRepo) Create(_ context.Context, t *entity.TipoSeguro) error {
	return r.a(func(e *estado) error {
		for _, x := range e.tipos {
			if x.Nombre == t.Nombre {
				return domain.ErrDuplicate
			}
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		e.tipos[t.ID] = *t
		return nil
	})
}

// GetByID nil si no existe.
func (r *TipoSeguroRepo) GetByID(_ context.Context, id string) (*entity.TipoSeguro, error) {
	var out *entity.TipoSeguro
	err := r.a(func(e *estado) error {
		if t, ok := e.tipos[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

// List tipos ordenados por nombre.
func (r *TipoSeguroRepo) List(_ context.Context) ([]*entity.TipoSeguro, error) {
	var out []*entity.TipoSeguro
	err := r.a(func(e *estado) error {
		for _, t := range e.tipos {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, err
}

// CompaniaRepo aseguradoras en memoria.
type CompaniaRepo struct {
	a acceso
}

// Create inserta la aseguradora. Nombre repetido → domain.ErrDuplicate.
func (r *CompaniaRepo) Create(_ context.Context, c *entity.CompaniaAseguradora) error {
	return r.a(func(e *estado) error {
		for _, x := range e.companias {
			if x.Nombre == c.Nombre {
				return domain.ErrDuplicate
			}
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		e.companias[c.ID] = *c
		return nil
	})
}

// GetByID nil si no existe.
func (r *CompaniaRepo) GetByID(_ context.Context, id string) (*entity.CompaniaAseguradora, error) {
	var out *entity.CompaniaAseguradora
	err := r.a(func(e *estado) error {
		if c, ok := e.companias[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// List aseguradoras ordenadas por nombre.
func (r *CompaniaRepo) List(_ context.Context) ([]*entity.CompaniaAseguradora, error) {
	var out []*entity.CompaniaAseguradora
	err := r.a(func(e *estado) error {
		for _, c := range e.companias {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, err
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
	a acceso
}

// Create inserta el usuario. Email repetido → domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a(func(e *estado) error {
		for _, x := range e.users {
			if x.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		e.users[u.ID] = *u
		return nil
	})
}

// GetByID nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a(func(e *estado) error {
		if u, ok := e.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByEmail nil si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a(func(e *estado) error {
		for _, u := range e.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ReporteRepo agregados sobre el estado confirmado.
type ReporteRepo struct {
	a acceso
}

// ContarPolizasNuevas pólizas con fecha de inicio en [desde, hasta].
func (r *ReporteRepo) ContarPolizasNuevas(_ context.Context, desde, hasta time.Time) (int, error) {
	n := 0
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if !p.FechaInicio.Before(desde) && !p.FechaInicio.After(hasta) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ContarPolizasEnMora pólizas ACTIVA con cartera EN_MORA.
func (r *ReporteRepo) ContarPolizasEnMora(_ context.Context) (int, error) {
	n := 0
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if p.Estado == entity.EstadoPolizaActiva && p.EstadoCartera == entity.EstadoCarteraEnMora {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ContarPolizasActivas pólizas en estado ACTIVA.
func (r *ReporteRepo) ContarPolizasActivas(_ context.Context) (int, error) {
	n := 0
	err := r.a(func(e *estado) error {
		for _, p := range e.polizas {
			if p.Estado == entity.EstadoPolizaActiva {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ContarClientes usuarios con rol cliente.
func (r *ReporteRepo) ContarClientes(_ context.Context) (int, error) {
	n := 0
	err := r.a(func(e *estado) error {
		for _, u := range e.users {
			if u.Role == entity.RoleCliente {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ComisionesPorCompania registros de comisión con fecha de pago en [desde, hasta] sumados por
// aseguradora de la póliza, mayor total primero.
func (r *ReporteRepo) ComisionesPorCompania(_ context.Context, desde, hasta time.Time) ([]repository.ComisionCompania, error) {
	porCompania := map[string]*repository.ComisionCompania{}
	err := r.a(func(e *estado) error {
		for _, pg := range e.pagos {
			if pg.CuotaID != nil || pg.FechaPago.Before(desde) || pg.FechaPago.After(hasta) {
				continue
			}
			p, ok := e.polizas[pg.PolizaID]
			if !ok {
				continue
			}
			c, ok := porCompania[p.CompaniaID]
			if !ok {
				c = &repository.ComisionCompania{
					CompaniaID:     p.CompaniaID,
					CompaniaNombre: e.companias[p.CompaniaID].Nombre,
					Pendiente:      decimal.Zero,
					Liquidada:      decimal.Zero,
				}
				porCompania[p.CompaniaID] = c
			}
			if pg.EstadoComision == entity.EstadoComisionLiquidada {
				c.Liquidada = c.Liquidada.Add(pg.MontoPagado)
			} else {
				c.Pendiente = c.Pendiente.Add(pg.MontoPagado)
			}
		}
		return nil
	})
	out := make([]repository.ComisionCompania, 0, len(porCompania))
	for _, c := range porCompania {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Pendiente.Add(out[i].Liquidada), out[j].Pendiente.Add(out[j].Liquidada)
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return out[i].CompaniaNombre < out[j].CompaniaNombre
	})
	return out, err
}
