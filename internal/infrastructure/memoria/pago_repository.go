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

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo pagos en memoria.
type PagoRepo struct {
	s *Store
	a acceso
}

// Create inserta el pago. Un segundo registro de comisión (sin cuota) para la misma póliza
// → domain.ErrDuplicate, como el índice único parcial de Postgres.
func (r *PagoRepo) Create(_ context.Context, p *entity.Pago) error {
	if err := r.s.falla(OpPagoCreate); err != nil {
		return err
	}
	return r.a(func(e *estado) error {
		if _, ok := e.polizas[p.PolizaID]; !ok {
			return domain.ErrNotFound
		}
		if p.CuotaID == nil {
			for _, x := range e.pagos {
				if x.PolizaID == p.PolizaID && x.CuotaID == nil {
					return domain.ErrDuplicate
				}
			}
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		e.pagos[p.ID] = *p
		return nil
	})
}

// GetByID nil si no existe.
func (r *PagoRepo) GetByID(_ context.Context, id string) (*entity.Pago, error) {
	var out *entity.Pago
	err := r.a(func(e *estado) error {
		if p, ok := e.pagos[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetRegistroComision pago sin cuota de la póliza o nil.
func (r *PagoRepo) GetRegistroComision(_ context.Context, polizaID string) (*entity.Pago, error) {
	var out *entity.Pago
	err := r.a(func(e *estado) error {
		for _, p := range e.pagos {
			if p.PolizaID == polizaID && p.CuotaID == nil {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListByPoliza pagos de la póliza por fecha de pago.
func (r *PagoRepo) ListByPoliza(_ context.Context, polizaID string) ([]*entity.Pago, error) {
	var out []*entity.Pago
	err := r.a(func(e *estado) error {
		for _, p := range e.pagos {
			if p.PolizaID == polizaID {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FechaPago.Equal(out[j].FechaPago) {
			return out[i].FechaPago.Before(out[j].FechaPago)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

// UpdateMonto cambia el monto sin tocar el estado de liquidación.
func (r *PagoRepo) UpdateMonto(_ context.Context, id string, monto decimal.Decimal) error {
	if err := r.s.falla(OpPagoUpdateMonto); err != nil {
		return err
	}
	return r.actualizar(id, func(p *entity.Pago) { p.MontoPagado = monto })
}

// UpdateEstadoComision cambia el estado de liquidación.
func (r *PagoRepo) UpdateEstadoComision(_ context.Context, id, estadoComision string) error {
	return r.actualizar(id, func(p *entity.Pago) { p.EstadoComision = estadoComision })
}

// UpdateComprobante guarda la llave del comprobante adjunto.
func (r *PagoRepo) UpdateComprobante(_ context.Context, id, key string) error {
	return r.actualizar(id, func(p *entity.Pago) { p.ComprobanteKey = key })
}

func (r *PagoRepo) actualizar(id string, fn func(p *entity.Pago)) error {
	return r.a(func(e *estado) error {
		p, ok := e.pagos[id]
		if !ok {
			return domain.ErrNotFound
		}
		fn(&p)
		p.UpdatedAt = time.Now()
		e.pagos[id] = p
		return nil
	})
}

// TotalesComisionEntre suma los registros de comisión con fecha de pago en [desde, hasta].
func (r *PagoRepo) TotalesComisionEntre(_ context.Context, desde, hasta time.Time) (repository.TotalesComision, error) {
	t := repository.TotalesComision{Pendiente: decimal.Zero, Liquidada: decimal.Zero}
	err := r.a(func(e *estado) error {
		for _, p := range e.pagos {
			if p.CuotaID != nil || p.FechaPago.Before(desde) || p.FechaPago.After(hasta) {
				continue
			}
			switch p.EstadoComision {
			case entity.EstadoComisionLiquidada:
				t.Liquidada = t.Liquidada.Add(p.MontoPagado)
			default:
				t.Pendiente = t.Pendiente.Add(p.MontoPagado)
			}
		}
		return nil
	})
	return t, err
}
