package reportes

import (
	"context"
	"fmt"
	"time"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/repository"
)

// Ventanas de alerta del tablero, en días desde hoy (inclusive).
const (
	DiasAlertaPolizas = 30
	DiasAlertaSOAT    = 15
)

// ReporteUseCase reportes de gestión de la agencia.
type ReporteUseCase struct {
	pagos     repository.PagoRepository
	reportes  repository.ReporteRepository
	polizas   repository.PolizaRepository
	vehiculos repository.VehiculoRepository
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(pagos repository.PagoRepository, reportes repository.ReporteRepository, polizas repository.PolizaRepository, vehiculos repository.VehiculoRepository) *ReporteUseCase {
	return &ReporteUseCase{pagos: pagos, reportes: reportes, polizas: polizas, vehiculos: vehiculos}
}

// ResumenComisiones totaliza los registros de comisión fechados en [desde, hasta] por estado de
// liquidación y por aseguradora, y cuenta las pólizas nuevas del rango y las que están en mora hoy.
func (uc *ReporteUseCase) ResumenComisiones(ctx context.Context, desde, hasta time.Time) (*dto.ResumenComisionesResponse, error) {
	if hasta.Before(desde) {
		return nil, fmt.Errorf("rango de fechas invertido: %w", domain.ErrInvalidInput)
	}
	totales, err := uc.pagos.TotalesComisionEntre(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("totales de comisión: %w", err)
	}
	nuevas, err := uc.reportes.ContarPolizasNuevas(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("pólizas nuevas: %w", err)
	}
	enMora, err := uc.reportes.ContarPolizasEnMora(ctx)
	if err != nil {
		return nil, fmt.Errorf("pólizas en mora: %w", err)
	}
	porCompania, err := uc.reportes.ComisionesPorCompania(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("comisiones por compañía: %w", err)
	}
	out := &dto.ResumenComisionesResponse{
		Desde:             desde.Format(dto.FormatoFecha),
		Hasta:             hasta.Format(dto.FormatoFecha),
		ComisionPendiente: totales.Pendiente,
		ComisionLiquidada: totales.Liquidada,
		ComisionTotal:     totales.Pendiente.Add(totales.Liquidada),
		PolizasNuevas:     nuevas,
		PolizasEnMora:     enMora,
		PorCompania:       make([]dto.ComisionCompaniaResponse, 0, len(porCompania)),
	}
	for _, c := range porCompania {
		out.PorCompania = append(out.PorCompania, dto.ComisionCompaniaResponse{
			CompaniaID: c.CompaniaID,
			Compania:   c.CompaniaNombre,
			Pendiente:  c.Pendiente,
			Liquidada:  c.Liquidada,
			Total:      c.Pendiente.Add(c.Liquidada),
		})
	}
	return out, nil
}

// Tablero indicadores del panel de inicio para la fecha hoy: clientes, pólizas activas, pólizas
// ACTIVA que vencen en los próximos 30 días y recordatorios SOAT de los próximos 15.
func (uc *ReporteUseCase) Tablero(ctx context.Context, hoy time.Time) (*dto.TableroResponse, error) {
	hoy = time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	clientes, err := uc.reportes.ContarClientes(ctx)
	if err != nil {
		return nil, fmt.Errorf("clientes: %w", err)
	}
	activas, err := uc.reportes.ContarPolizasActivas(ctx)
	if err != nil {
		return nil, fmt.Errorf("pólizas activas: %w", err)
	}
	porVencer, err := uc.polizas.ListPorVencer(ctx, hoy, hoy.AddDate(0, 0, DiasAlertaPolizas))
	if err != nil {
		return nil, fmt.Errorf("pólizas por vencer: %w", err)
	}
	soats, err := uc.vehiculos.ListSOATPorVencer(ctx, hoy, hoy.AddDate(0, 0, DiasAlertaSOAT))
	if err != nil {
		return nil, fmt.Errorf("soat por vencer: %w", err)
	}

	out := &dto.TableroResponse{
		Fecha:               hoy.Format(dto.FormatoFecha),
		TotalClientes:       clientes,
		PolizasActivas:      activas,
		PolizasPorVencer:    len(porVencer),
		ListaPolizasAVencer: make([]dto.PolizaAVencerItem, 0, len(porVencer)),
		ListaSOATsAVencer:   make([]dto.SOATAVencerItem, 0, len(soats)),
	}
	for _, item := range porVencer {
		out.ListaPolizasAVencer = append(out.ListaPolizasAVencer, dto.PolizaAVencerItem{
			PolizaID:      item.Poliza.ID,
			NumeroPoliza:  item.Poliza.NumeroPoliza,
			TipoSeguro:    item.Poliza.TipoSeguroNombre,
			ClienteNombre: item.ClienteNombre,
			FechaFin:      item.Poliza.FechaFin.Format(dto.FormatoFecha),
		})
	}
	for _, v := range soats {
		out.ListaSOATsAVencer = append(out.ListaSOATsAVencer, dto.SOATAVencerItem{
			VehiculoID:        v.ID,
			ClienteID:         v.ClienteID,
			Placa:             v.Placa,
			FechaRecordatorio: v.SOATVencimientoRecordatorio.Format(dto.FormatoFecha),
		})
	}
	return out, nil
}
