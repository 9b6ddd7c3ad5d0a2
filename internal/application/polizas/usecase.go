package polizas

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

// plazoPorDefecto meses cuando no se informa plazo.
const plazoPorDefecto = 12

// PolizaUseCase casos de uso del ciclo de vida de la póliza.
// Cada guardado y sus registros derivados ocurren en una sola transacción.
type PolizaUseCase struct {
	tx         ports.TxRunner
	polizas    repository.PolizaRepository
	derivacion *DerivacionService
}

// NewPolizaUseCase construye el caso de uso.
func NewPolizaUseCase(tx ports.TxRunner, polizas repository.PolizaRepository, derivacion *DerivacionService) *PolizaUseCase {
	return &PolizaUseCase{tx: tx, polizas: polizas, derivacion: derivacion}
}

// Crear valida y guarda la póliza junto con su plan de cuotas o su registro de comisión.
func (uc *PolizaUseCase) Crear(ctx context.Context, in dto.CreatePolizaRequest) (*dto.PolizaResponse, error) {
	inicio, err := parseFecha(in.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(in.FechaFin)
	if err != nil {
		return nil, err
	}
	if fin.Before(inicio) {
		return nil, fmt.Errorf("fecha_fin anterior a fecha_inicio: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.NumeroPoliza) == "" || in.ClienteID == "" || in.TipoSeguroID == "" || in.CompaniaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ValorPrimaSinIVA.IsNegative() {
		return nil, fmt.Errorf("valor de prima negativo: %w", domain.ErrInvalidInput)
	}
	if !entity.ModoPagoValido(in.ModoPago) {
		return nil, fmt.Errorf("modo de pago %q: %w", in.ModoPago, domain.ErrInvalidInput)
	}
	if in.PlazoMeses < 0 {
		return nil, fmt.Errorf("plazo en meses negativo: %w", domain.ErrInvalidInput)
	}
	if in.PlazoMeses == 0 {
		in.PlazoMeses = plazoPorDefecto
	}

	now := time.Now()
	p := &entity.Poliza{
		ID:               uuid.New().String(),
		NumeroPoliza:     strings.TrimSpace(in.NumeroPoliza),
		ClienteID:        in.ClienteID,
		TipoSeguroID:     in.TipoSeguroID,
		CompaniaID:       in.CompaniaID,
		VehiculoID:       in.VehiculoID,
		FechaInicio:      inicio,
		FechaFin:         fin,
		ValorPrimaSinIVA: in.ValorPrimaSinIVA,
		ModoPago:         in.ModoPago,
		PlazoMeses:       in.PlazoMeses,
		Estado:           entity.EstadoPolizaActiva,
		EstadoCartera:    entity.EstadoCarteraAlDia,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.tx.Run(ctx, func(repos ports.Repos, savepoint ports.Savepoint) error {
		tipo, err := repos.TiposSeguro.GetByID(ctx, in.TipoSeguroID)
		if err != nil {
			return err
		}
		if tipo == nil {
			return fmt.Errorf("tipo de seguro %s: %w", in.TipoSeguroID, domain.ErrInvalidInput)
		}
		p.TipoSeguroNombre = tipo.Nombre
		p.PorcentajeIVA = tipo.PorcentajeIVA
		p.ComisionPorcentaje = tipo.ComisionPorcentaje
		compania, err := repos.Companias.GetByID(ctx, in.CompaniaID)
		if err != nil {
			return err
		}
		if compania == nil {
			return fmt.Errorf("compañía aseguradora %s: %w", in.CompaniaID, domain.ErrInvalidInput)
		}
		p.CompaniaNombre = compania.Nombre
		if p.VehiculoID != nil {
			v, err := repos.Vehiculos.GetByID(ctx, *p.VehiculoID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("vehículo %s: %w", *p.VehiculoID, domain.ErrInvalidInput)
			}
		}
		if err := repos.Polizas.Create(ctx, p); err != nil {
			return err
		}
		return uc.derivacion.AlCrear(ctx, repos, savepoint, p)
	})
	if err != nil {
		return nil, err
	}
	return ToPolizaResponse(p), nil
}

// Actualizar aplica una edición parcial y concilia los registros derivados.
func (uc *PolizaUseCase) Actualizar(ctx context.Context, id string, in dto.UpdatePolizaRequest) (*dto.PolizaResponse, error) {
	var p *entity.Poliza
	err := uc.tx.Run(ctx, func(repos ports.Repos, savepoint ports.Savepoint) error {
		var err error
		p, err = repos.Polizas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := aplicarCambios(p, in); err != nil {
			return err
		}
		if p.VehiculoID != nil {
			v, err := repos.Vehiculos.GetByID(ctx, *p.VehiculoID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("vehículo %s: %w", *p.VehiculoID, domain.ErrInvalidInput)
			}
		}
		p.UpdatedAt = time.Now()
		if err := repos.Polizas.Update(ctx, p); err != nil {
			return err
		}
		uc.derivacion.AlActualizar(ctx, repos, savepoint, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPolizaResponse(p), nil
}

func aplicarCambios(p *entity.Poliza, in dto.UpdatePolizaRequest) error {
	if in.VehiculoID != nil {
		if *in.VehiculoID == "" {
			p.VehiculoID = nil
		} else {
			v := *in.VehiculoID
			p.VehiculoID = &v
		}
	}
	if in.FechaInicio != nil {
		f, err := parseFecha(*in.FechaInicio)
		if err != nil {
			return err
		}
		p.FechaInicio = f
	}
	if in.FechaFin != nil {
		f, err := parseFecha(*in.FechaFin)
		if err != nil {
			return err
		}
		p.FechaFin = f
	}
	if p.FechaFin.Before(p.FechaInicio) {
		return fmt.Errorf("fecha_fin anterior a fecha_inicio: %w", domain.ErrInvalidInput)
	}
	if in.ValorPrimaSinIVA != nil {
		if in.ValorPrimaSinIVA.IsNegative() {
			return fmt.Errorf("valor de prima negativo: %w", domain.ErrInvalidInput)
		}
		p.ValorPrimaSinIVA = *in.ValorPrimaSinIVA
	}
	if in.Estado != nil {
		if !entity.EstadoPolizaValido(*in.Estado) {
			return fmt.Errorf("estado %q: %w", *in.Estado, domain.ErrInvalidInput)
		}
		p.Estado = *in.Estado
	}
	return nil
}

// Obtener devuelve la póliza con sus valores derivados.
func (uc *PolizaUseCase) Obtener(ctx context.Context, id string) (*dto.PolizaResponse, error) {
	p, err := uc.polizas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToPolizaResponse(p), nil
}

// Listar pólizas que cumplen el filtro. Los totales se calculan sobre el conjunto filtrado:
// ventas = prima con IVA, comisiones = prima sin IVA × % de comisión.
func (uc *PolizaUseCase) Listar(ctx context.Context, in dto.ListarPolizasRequest) (*dto.ListaPolizasResponse, error) {
	if in.EstadoCartera != "" && !entity.EstadoCarteraValido(in.EstadoCartera) {
		return nil, fmt.Errorf("estado de cartera %q: %w", in.EstadoCartera, domain.ErrInvalidInput)
	}
	list, err := uc.polizas.List(ctx, repository.FiltroPolizas{
		ClienteID:     in.ClienteID,
		EstadoCartera: in.EstadoCartera,
		CompaniaID:    in.CompaniaID,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ListaPolizasResponse{
		Polizas:         make([]*dto.PolizaResponse, 0, len(list)),
		TotalVentas:     decimal.Zero,
		TotalComisiones: decimal.Zero,
	}
	for _, p := range list {
		r := ToPolizaResponse(p)
		out.Polizas = append(out.Polizas, r)
		out.TotalVentas = out.TotalVentas.Add(r.ValorTotalAPagar)
		out.TotalComisiones = out.TotalComisiones.Add(r.ValorComision)
		if p.EstadoCartera == entity.EstadoCarteraEnMora {
			out.PolizasEnMora++
		}
	}
	out.Total = len(out.Polizas)
	return out, nil
}

// PrevisualizarCancelacion calcula el prorrateo para una fecha de cancelación sin guardar nada.
func (uc *PolizaUseCase) PrevisualizarCancelacion(ctx context.Context, id string, in dto.CancelarPolizaRequest) (*dto.ProrrateoResponse, error) {
	fecha, err := parseFecha(in.FechaCancelacion)
	if err != nil {
		return nil, err
	}
	p, err := uc.polizas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	simulada := *p
	simulada.FechaCancelacion = &fecha
	devolucion, comision := cartera.ProrrateoCancelacion(&simulada)
	return &dto.ProrrateoResponse{
		NumeroPoliza:     p.NumeroPoliza,
		FechaCancelacion: fecha.Format(dto.FormatoFecha),
		Aplica:           devolucion != nil,
		MontoDevolucion:  devolucion,
		ComisionDevuelta: comision,
	}, nil
}

// Cancelar marca la póliza CANCELADA y, si es de contado, guarda la devolución prorrateada.
// La comisión no se vuelve a conciliar porque la póliza deja de estar ACTIVA.
func (uc *PolizaUseCase) Cancelar(ctx context.Context, id string, in dto.CancelarPolizaRequest) (*dto.PolizaResponse, error) {
	fecha, err := parseFecha(in.FechaCancelacion)
	if err != nil {
		return nil, err
	}
	var p *entity.Poliza
	err = uc.tx.Run(ctx, func(repos ports.Repos, savepoint ports.Savepoint) error {
		var err error
		p, err = repos.Polizas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.EsActiva() {
			return domain.ErrPolizaNoActiva
		}
		p.Estado = entity.EstadoPolizaCancelada
		p.FechaCancelacion = &fecha
		p.MotivoCancelacion = in.Motivo
		p.MontoDevolucion, p.ComisionDevuelta = cartera.ProrrateoCancelacion(p)
		p.UpdatedAt = time.Now()
		if err := repos.Polizas.Update(ctx, p); err != nil {
			return err
		}
		uc.derivacion.AlActualizar(ctx, repos, savepoint, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPolizaResponse(p), nil
}

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(dto.FormatoFecha, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// ToPolizaResponse mapea la entidad a su salida con valores derivados a precisión de moneda.
func ToPolizaResponse(p *entity.Poliza) *dto.PolizaResponse {
	out := &dto.PolizaResponse{
		ID:                 p.ID,
		NumeroPoliza:       p.NumeroPoliza,
		ClienteID:          p.ClienteID,
		TipoSeguroID:       p.TipoSeguroID,
		TipoSeguro:         p.TipoSeguroNombre,
		CompaniaID:         p.CompaniaID,
		Compania:           p.CompaniaNombre,
		VehiculoID:         p.VehiculoID,
		FechaInicio:        p.FechaInicio.Format(dto.FormatoFecha),
		FechaFin:           p.FechaFin.Format(dto.FormatoFecha),
		ValorPrimaSinIVA:   p.ValorPrimaSinIVA,
		PorcentajeIVA:      p.PorcentajeIVA,
		ValorIVA:           cartera.MontoMoneda(p.ValorIVA()),
		ValorTotalAPagar:   cartera.MontoMoneda(p.ValorTotalAPagar()),
		ComisionPorcentaje: p.ComisionPorcentaje,
		ValorComision:      cartera.MontoMoneda(p.ValorComision()),
		ModoPago:           p.ModoPago,
		PlazoMeses:         p.PlazoMeses,
		Estado:             p.Estado,
		EstadoCartera:      p.EstadoCartera,
		MotivoCancelacion:  p.MotivoCancelacion,
		MontoDevolucion:    p.MontoDevolucion,
		ComisionDevuelta:   p.ComisionDevuelta,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.FechaCancelacion != nil {
		f := p.FechaCancelacion.Format(dto.FormatoFecha)
		out.FechaCancelacion = &f
	}
	return out
}
