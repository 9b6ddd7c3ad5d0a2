package cartera

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain"
	domcartera "github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/pkg/logger"
)

// CarteraUseCase operaciones manuales sobre cuotas y pagos de una póliza.
type CarteraUseCase struct {
	tx           ports.TxRunner
	repos        ports.Repos
	comprobantes ComprobanteStore
	pdf          EstadoCuentaPDFGenerator
	log          *logger.Logger
	now          func() time.Time
}

// NewCarteraUseCase construye el caso de uso. repos son los repositorios fuera de transacción
// usados para lecturas.
func NewCarteraUseCase(
	tx ports.TxRunner,
	repos ports.Repos,
	comprobantes ComprobanteStore,
	pdf EstadoCuentaPDFGenerator,
	log *logger.Logger,
) *CarteraUseCase {
	return &CarteraUseCase{tx: tx, repos: repos, comprobantes: comprobantes, pdf: pdf, log: log, now: time.Now}
}

// RegistrarPagoCuota marca la cuota PAGADA y crea el pago que la respalda. Si la póliza ya no
// tiene cuotas en mora vuelve a AL_DIA.
func (uc *CarteraUseCase) RegistrarPagoCuota(ctx context.Context, cuotaID string, in dto.RegistrarPagoCuotaRequest) (*dto.PagoResponse, error) {
	fecha := domcartera.Fecha(uc.now())
	if strings.TrimSpace(in.FechaPago) != "" {
		f, err := time.Parse(dto.FormatoFecha, strings.TrimSpace(in.FechaPago))
		if err != nil {
			return nil, fmt.Errorf("fecha_pago %q: %w", in.FechaPago, domain.ErrInvalidInput)
		}
		fecha = f
	}

	var pago *entity.Pago
	err := uc.tx.Run(ctx, func(repos ports.Repos, _ ports.Savepoint) error {
		cuota, err := repos.Cuotas.GetByID(ctx, cuotaID)
		if err != nil {
			return err
		}
		if cuota == nil {
			return domain.ErrNotFound
		}
		if cuota.Estado == entity.EstadoCuotaPagada {
			return domain.ErrCuotaYaPagada
		}
		p, err := repos.Polizas.GetByID(ctx, cuota.PolizaID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := repos.Cuotas.UpdateEstado(ctx, cuota.ID, entity.EstadoCuotaPagada); err != nil {
			return err
		}
		notas := in.Notas
		if notas == "" {
			notas = fmt.Sprintf(entity.NotaPagoCuotaAutomaticaFmt, cuota.NumeroCuota)
		}
		now := uc.now()
		id := cuota.ID
		pago = &entity.Pago{
			PolizaID:       p.ID,
			CuotaID:        &id,
			FechaPago:      fecha,
			MontoPagado:    cuota.MontoCuota,
			EstadoComision: entity.EstadoComisionPendiente,
			Notas:          notas,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repos.Pagos.Create(ctx, pago); err != nil {
			return err
		}
		enMora, err := repos.Cuotas.ExisteEnMora(ctx, p.ID)
		if err != nil {
			return err
		}
		if !enMora && p.EstadoCartera == entity.EstadoCarteraEnMora {
			if err := repos.Polizas.ActualizarEstadoCartera(ctx, p.ID, entity.EstadoCarteraAlDia); err != nil {
				return err
			}
		}
		uc.log.Info().
			Str("numero_poliza", p.NumeroPoliza).
			Int("numero_cuota", cuota.NumeroCuota).
			Str("monto", cuota.MontoCuota.StringFixed(2)).
			Msg("pago de cuota registrado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToPagoResponse(pago), nil
}

// MarcarCuotaEnMora pasa manualmente una cuota a EN_MORA y la póliza a cartera EN_MORA.
func (uc *CarteraUseCase) MarcarCuotaEnMora(ctx context.Context, cuotaID string) error {
	return uc.tx.Run(ctx, func(repos ports.Repos, _ ports.Savepoint) error {
		cuota, err := repos.Cuotas.GetByID(ctx, cuotaID)
		if err != nil {
			return err
		}
		if cuota == nil {
			return domain.ErrNotFound
		}
		if cuota.Estado == entity.EstadoCuotaPagada {
			return domain.ErrCuotaYaPagada
		}
		if err := repos.Cuotas.UpdateEstado(ctx, cuota.ID, entity.EstadoCuotaEnMora); err != nil {
			return err
		}
		p, err := repos.Polizas.GetByID(ctx, cuota.PolizaID)
		if err != nil {
			return err
		}
		if p != nil && p.EstadoCartera != entity.EstadoCarteraEnMora {
			return repos.Polizas.ActualizarEstadoCartera(ctx, p.ID, entity.EstadoCarteraEnMora)
		}
		return nil
	})
}

// CambiarEstadoComision liquida o revierte la liquidación de un pago. Nunca ocurre de forma automática.
func (uc *CarteraUseCase) CambiarEstadoComision(ctx context.Context, pagoID string, in dto.CambiarEstadoComisionRequest) (*dto.PagoResponse, error) {
	if !entity.EstadoComisionValido(in.Estado) {
		return nil, fmt.Errorf("estado de comisión %q: %w", in.Estado, domain.ErrInvalidInput)
	}
	pago, err := uc.repos.Pagos.GetByID(ctx, pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil {
		return nil, domain.ErrNotFound
	}
	if pago.EstadoComision != in.Estado {
		if err := uc.repos.Pagos.UpdateEstadoComision(ctx, pago.ID, in.Estado); err != nil {
			return nil, err
		}
		pago.EstadoComision = in.Estado
	}
	return ToPagoResponse(pago), nil
}

// AdjuntarComprobante sube el archivo del comprobante y guarda su llave en el pago.
func (uc *CarteraUseCase) AdjuntarComprobante(ctx context.Context, pagoID, nombre, contentType string, data []byte) (*dto.PagoResponse, error) {
	if uc.comprobantes == nil {
		return nil, fmt.Errorf("almacenamiento de comprobantes: %w", domain.ErrNoDisponible)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("comprobante vacío: %w", domain.ErrInvalidInput)
	}
	pago, err := uc.repos.Pagos.GetByID(ctx, pagoID)
	if err != nil {
		return nil, err
	}
	if pago == nil {
		return nil, domain.ErrNotFound
	}
	key := fmt.Sprintf("comprobantes/%s/%s-%s", pago.PolizaID, pago.ID, nombreArchivo(nombre))
	key, err = uc.comprobantes.Guardar(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("guardar comprobante: %w", err)
	}
	if err := uc.repos.Pagos.UpdateComprobante(ctx, pago.ID, key); err != nil {
		return nil, err
	}
	pago.ComprobanteKey = key
	return ToPagoResponse(pago), nil
}

func nombreArchivo(nombre string) string {
	base := path.Base(strings.ReplaceAll(nombre, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, base)
	if base == "." || base == "" {
		return "comprobante"
	}
	return base
}

// Detalle devuelve la póliza con sus cuotas, pagos y el resumen de cartera.
func (uc *CarteraUseCase) Detalle(ctx context.Context, polizaID string) (*dto.DetalleCarteraResponse, error) {
	p, err := uc.repos.Polizas.GetByID(ctx, polizaID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	cuotas, err := uc.repos.Cuotas.ListByPoliza(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	pagos, err := uc.repos.Pagos.ListByPoliza(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	out := &dto.DetalleCarteraResponse{
		Poliza: *polizas.ToPolizaResponse(p),
		Cuotas: make([]dto.CuotaResponse, 0, len(cuotas)),
		Pagos:  make([]dto.PagoResponse, 0, len(pagos)),
		Resumen: dto.ResumenCartera{
			TotalCuotas:    len(cuotas),
			TotalPagado:    decimal.Zero,
			SaldoPendiente: decimal.Zero,
		},
	}
	for _, c := range cuotas {
		out.Cuotas = append(out.Cuotas, dto.CuotaResponse{
			ID:               c.ID,
			NumeroCuota:      c.NumeroCuota,
			FechaVencimiento: c.FechaVencimiento.Format(dto.FormatoFecha),
			MontoCuota:       c.MontoCuota,
			Estado:           c.Estado,
		})
		switch c.Estado {
		case entity.EstadoCuotaPagada:
			out.Resumen.Pagadas++
		case entity.EstadoCuotaEnMora:
			out.Resumen.EnMora++
			out.Resumen.SaldoPendiente = out.Resumen.SaldoPendiente.Add(c.MontoCuota)
		default:
			out.Resumen.Pendientes++
			out.Resumen.SaldoPendiente = out.Resumen.SaldoPendiente.Add(c.MontoCuota)
		}
	}
	for _, pg := range pagos {
		out.Pagos = append(out.Pagos, *ToPagoResponse(pg))
		if !pg.EsRegistroComision() {
			out.Resumen.TotalPagado = out.Resumen.TotalPagado.Add(pg.MontoPagado)
		}
	}
	return out, nil
}

// EstadoCuentaPDF genera el estado de cuenta de la póliza. Devuelve el PDF y su nombre de archivo.
func (uc *CarteraUseCase) EstadoCuentaPDF(ctx context.Context, polizaID string) ([]byte, string, error) {
	detalle, err := uc.Detalle(ctx, polizaID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GenerarEstadoCuenta(ctx, detalle)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("estado_cuenta_%s.pdf", detalle.Poliza.NumeroPoliza), nil
}

// ToPagoResponse mapea un pago a su salida.
func ToPagoResponse(p *entity.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:             p.ID,
		PolizaID:       p.PolizaID,
		CuotaID:        p.CuotaID,
		FechaPago:      p.FechaPago.Format(dto.FormatoFecha),
		MontoPagado:    p.MontoPagado,
		EstadoComision: p.EstadoComision,
		Notas:          p.Notas,
		Comprobante:    p.ComprobanteKey,
		CreatedAt:      p.CreatedAt,
	}
}
