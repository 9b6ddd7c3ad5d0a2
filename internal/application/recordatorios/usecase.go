package recordatorios

import (
	"context"
	"fmt"
	"time"

	"github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/repository"
	"github.com/assecol/seguros-api/pkg/logger"
)

// Notifier envía un correo HTML.
type Notifier interface {
	Enviar(ctx context.Context, para, asunto, cuerpoHTML string) error
}

// Resultado conteos de una corrida de recordatorios.
type Resultado struct {
	Encontradas int
	Enviadas    int
	Errores     int
}

// RecordatorioUseCase avisa al cliente (y al administrador, si está configurado) de las pólizas
// activas que vencen dentro de la ventana de días.
type RecordatorioUseCase struct {
	polizas    repository.PolizaRepository
	notifier   Notifier
	adminEmail string
	dias       int
	log        *logger.Logger
}

// NewRecordatorioUseCase construye el caso de uso. dias es el tamaño de la ventana (ej. 30).
func NewRecordatorioUseCase(polizas repository.PolizaRepository, notifier Notifier, adminEmail string, dias int, log *logger.Logger) *RecordatorioUseCase {
	return &RecordatorioUseCase{polizas: polizas, notifier: notifier, adminEmail: adminEmail, dias: dias, log: log}
}

// EnviarRecordatorios busca pólizas ACTIVA con fecha fin en [hoy, hoy+dias] y envía los correos.
// Una falla en una póliza se registra y cuenta; el resto del lote continúa.
func (uc *RecordatorioUseCase) EnviarRecordatorios(ctx context.Context, hoy time.Time) (*Resultado, error) {
	desde := cartera.Fecha(hoy)
	hasta := desde.AddDate(0, 0, uc.dias)
	lista, err := uc.polizas.ListPorVencer(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	res := &Resultado{Encontradas: len(lista)}
	if len(lista) == 0 {
		uc.log.Info().Int("dias", uc.dias).Msg("no hay pólizas por vencer")
		return res, nil
	}

	for _, item := range lista {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := uc.notificar(ctx, item); err != nil {
			res.Errores++
			uc.log.Error().
				Str("numero_poliza", item.Poliza.NumeroPoliza).
				Str("cliente_email", item.ClienteEmail).
				Err(err).
				Msg("error enviando recordatorio de vencimiento")
			continue
		}
		res.Enviadas++
	}

	ev := uc.log.Info()
	if res.Errores > 0 {
		ev = uc.log.Warn()
	}
	ev.Int("total", res.Encontradas).Int("enviados", res.Enviadas).Int("errores", res.Errores).
		Msg("recordatorios de vencimiento procesados")
	return res, nil
}

func (uc *RecordatorioUseCase) notificar(ctx context.Context, item repository.PolizaPorVencer) error {
	if item.ClienteEmail == "" {
		return fmt.Errorf("cliente sin email")
	}
	asunto := fmt.Sprintf("Recordatorio: Tu póliza #%s está por vencer", item.Poliza.NumeroPoliza)
	if err := uc.notifier.Enviar(ctx, item.ClienteEmail, asunto, plantillaCliente(item)); err != nil {
		return fmt.Errorf("correo al cliente: %w", err)
	}
	uc.log.Info().
		Str("numero_poliza", item.Poliza.NumeroPoliza).
		Str("cliente_email", item.ClienteEmail).
		Msg("recordatorio enviado al cliente")

	if uc.adminEmail == "" {
		return nil
	}
	asunto = fmt.Sprintf("Alerta Vencimiento: Póliza de %s", item.ClienteNombre)
	if err := uc.notifier.Enviar(ctx, uc.adminEmail, asunto, plantillaAdmin(item)); err != nil {
		return fmt.Errorf("correo al administrador: %w", err)
	}
	uc.log.Debug().Str("admin_email", uc.adminEmail).Msg("copia de recordatorio enviada")
	return nil
}
