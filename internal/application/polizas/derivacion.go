package polizas

import (
	"context"
	"fmt"
	"time"

	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/pkg/logger"
)

// DerivacionService genera y concilia los registros que dependen de una póliza guardada:
// plan de cuotas, registro de comisión y recordatorio SOAT del vehículo.
// Se invoca explícitamente desde los casos de uso, dentro de la transacción del guardado.
type DerivacionService struct {
	log *logger.Logger
}

// NewDerivacionService construye el servicio.
func NewDerivacionService(log *logger.Logger) *DerivacionService {
	return &DerivacionService{log: log}
}

// AlCrear deriva los registros de una póliza recién creada.
// Un error aquí debe abortar la transacción: no puede existir una póliza MENSUAL sin su plan
// completo ni una de contado/crédito sin su registro de comisión.
func (s *DerivacionService) AlCrear(ctx context.Context, repos ports.Repos, savepoint ports.Savepoint, p *entity.Poliza) error {
	switch p.ModoPago {
	case entity.ModoPagoMensual:
		if err := s.crearPlanDeCuotas(ctx, repos, p); err != nil {
			return err
		}
	case entity.ModoPagoContado, entity.ModoPagoCredito:
		if err := s.crearRegistroComision(ctx, repos, p, entity.NotaComisionAutomatica); err != nil {
			s.log.Error().Str("numero_poliza", p.NumeroPoliza).Err(err).Msg("error creando registro de comisión")
			return err
		}
	}
	s.propagarSOAT(ctx, savepoint, p)
	return nil
}

// AlActualizar concilia los registros tras editar una póliza. Nunca toca el plan de cuotas.
// La conciliación de comisión solo corre para pólizas ACTIVA y sus fallos se registran sin
// abortar la edición.
func (s *DerivacionService) AlActualizar(ctx context.Context, repos ports.Repos, savepoint ports.Savepoint, p *entity.Poliza) {
	if p.PagaEnUnSoloRegistro() && p.EsActiva() {
		err := savepoint(ctx, func(r ports.Repos) error {
			return s.conciliarComision(ctx, r, p)
		})
		if err != nil {
			s.log.Error().Str("numero_poliza", p.NumeroPoliza).Err(err).Msg("error conciliando comisión")
		}
	}
	s.propagarSOAT(ctx, savepoint, p)
}

func (s *DerivacionService) crearPlanDeCuotas(ctx context.Context, repos ports.Repos, p *entity.Poliza) error {
	cuotas, err := cartera.GenerarPlanDeCuotas(p)
	if err != nil {
		return err
	}
	if err := repos.Cuotas.CreateBatch(ctx, cuotas); err != nil {
		s.log.Error().Str("numero_poliza", p.NumeroPoliza).Err(err).Msg("error creando plan de cuotas")
		return fmt.Errorf("plan de cuotas de la póliza %s: %w", p.NumeroPoliza, err)
	}
	s.log.Info().
		Str("numero_poliza", p.NumeroPoliza).
		Int("cuotas", len(cuotas)).
		Str("monto_cuota", cuotas[0].MontoCuota.StringFixed(2)).
		Msg("plan de cuotas creado")
	return nil
}

func (s *DerivacionService) crearRegistroComision(ctx context.Context, repos ports.Repos, p *entity.Poliza, nota string) error {
	comision := cartera.ComisionRegistrable(p)
	if !comision.IsPositive() {
		return nil
	}
	now := time.Now()
	pago := &entity.Pago{
		PolizaID:       p.ID,
		FechaPago:      p.FechaInicio,
		MontoPagado:    comision,
		EstadoComision: entity.EstadoComisionPendiente,
		Notas:          nota,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repos.Pagos.Create(ctx, pago); err != nil {
		return fmt.Errorf("registro de comisión de la póliza %s: %w", p.NumeroPoliza, err)
	}
	s.log.Info().
		Str("numero_poliza", p.NumeroPoliza).
		Str("comision", comision.StringFixed(2)).
		Msg("registro de comisión creado")
	return nil
}

func (s *DerivacionService) conciliarComision(ctx context.Context, repos ports.Repos, p *entity.Poliza) error {
	registro, err := repos.Pagos.GetRegistroComision(ctx, p.ID)
	if err != nil {
		return err
	}
	if registro == nil {
		return s.crearRegistroComision(ctx, repos, p, entity.NotaComisionActualizacion)
	}
	comision := cartera.ComisionRegistrable(p)
	if registro.MontoPagado.Equal(comision) {
		return nil
	}
	if err := repos.Pagos.UpdateMonto(ctx, registro.ID, comision); err != nil {
		return fmt.Errorf("actualizar comisión de la póliza %s: %w", p.NumeroPoliza, err)
	}
	s.log.Info().
		Str("numero_poliza", p.NumeroPoliza).
		Str("anterior", registro.MontoPagado.StringFixed(2)).
		Str("comision", comision.StringFixed(2)).
		Msg("registro de comisión actualizado")
	return nil
}

// propagarSOAT copia la fecha fin de una póliza SOAT al recordatorio de su vehículo.
// Corre en cada guardado; un fallo se registra y no afecta la póliza.
func (s *DerivacionService) propagarSOAT(ctx context.Context, savepoint ports.Savepoint, p *entity.Poliza) {
	if p.VehiculoID == nil || !entity.EsSOAT(p.TipoSeguroNombre) {
		return
	}
	err := savepoint(ctx, func(r ports.Repos) error {
		return r.Vehiculos.ActualizarRecordatorioSOAT(ctx, *p.VehiculoID, p.FechaFin)
	})
	if err != nil {
		s.log.Error().Str("numero_poliza", p.NumeroPoliza).Str("vehiculo_id", *p.VehiculoID).Err(err).Msg("error actualizando recordatorio SOAT")
		return
	}
	s.log.Info().
		Str("numero_poliza", p.NumeroPoliza).
		Str("vehiculo_id", *p.VehiculoID).
		Str("fecha", p.FechaFin.Format("2006-01-02")).
		Msg("recordatorio SOAT actualizado")
}
