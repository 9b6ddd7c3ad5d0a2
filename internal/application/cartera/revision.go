package cartera

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain"
	domcartera "github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/domain/repository"
	"github.com/assecol/seguros-api/pkg/logger"
)

// ResultadoRevision conteos de cambios de estado de una revisión.
type ResultadoRevision struct {
	Fecha               time.Time
	PolizasRevisadas    int
	CuotasMarcadasMora  int64
	PolizasMarcadasMora int
	PolizasMarcadasDia  int
	Errores             int
}

// RevisionUseCase recorre las pólizas ACTIVA/MENSUAL, pasa a EN_MORA las cuotas vencidas y
// recalcula el estado de cartera de cada póliza. Ejecutarla dos veces seguidas no produce cambios.
type RevisionUseCase struct {
	tx      ports.TxRunner
	polizas repository.PolizaRepository
	log     *logger.Logger
	enCurso atomic.Bool
}

// NewRevisionUseCase construye el caso de uso.
func NewRevisionUseCase(tx ports.TxRunner, polizas repository.PolizaRepository, log *logger.Logger) *RevisionUseCase {
	return &RevisionUseCase{tx: tx, polizas: polizas, log: log}
}

// Revisar ejecuta la revisión con fecha de corte hoy: vencen las cuotas con fecha anterior a hoy.
// Cada póliza se revisa en su propia transacción; una falla se registra y no detiene el resto.
// Dos revisiones simultáneas en el mismo proceso no se permiten (domain.ErrRevisionEnCurso).
func (uc *RevisionUseCase) Revisar(ctx context.Context, hoy time.Time) (*ResultadoRevision, error) {
	if !uc.enCurso.CompareAndSwap(false, true) {
		return nil, domain.ErrRevisionEnCurso
	}
	defer uc.enCurso.Store(false)

	res := &ResultadoRevision{Fecha: domcartera.Fecha(hoy)}
	lista, err := uc.polizas.ListActivasMensuales(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range lista {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := uc.revisarPoliza(ctx, p.ID, res); err != nil {
			res.Errores++
			uc.log.Error().Str("numero_poliza", p.NumeroPoliza).Err(err).Msg("error revisando cartera")
			continue
		}
		res.PolizasRevisadas++
	}
	uc.log.Info().
		Str("fecha", res.Fecha.Format(dto.FormatoFecha)).
		Int("polizas_revisadas", res.PolizasRevisadas).
		Int64("cuotas_marcadas_mora", res.CuotasMarcadasMora).
		Int("polizas_marcadas_mora", res.PolizasMarcadasMora).
		Int("polizas_marcadas_al_dia", res.PolizasMarcadasDia).
		Int("errores", res.Errores).
		Msg("revisión de cartera finalizada")
	return res, nil
}

func (uc *RevisionUseCase) revisarPoliza(ctx context.Context, polizaID string, res *ResultadoRevision) error {
	var (
		cuotas int64
		cambio string
	)
	err := uc.tx.Run(ctx, func(repos ports.Repos, _ ports.Savepoint) error {
		p, err := repos.Polizas.GetByID(ctx, polizaID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		cuotas, err = repos.Cuotas.MarcarVencidasEnMora(ctx, p.ID, res.Fecha)
		if err != nil {
			return err
		}
		enMora, err := repos.Cuotas.ExisteEnMora(ctx, p.ID)
		if err != nil {
			return err
		}
		objetivo := entity.EstadoCarteraAlDia
		if enMora {
			objetivo = entity.EstadoCarteraEnMora
		}
		if p.EstadoCartera == objetivo {
			return nil
		}
		if err := repos.Polizas.ActualizarEstadoCartera(ctx, p.ID, objetivo); err != nil {
			return err
		}
		cambio = objetivo
		return nil
	})
	if err != nil {
		return err
	}
	res.CuotasMarcadasMora += cuotas
	switch cambio {
	case entity.EstadoCarteraEnMora:
		res.PolizasMarcadasMora++
	case entity.EstadoCarteraAlDia:
		res.PolizasMarcadasDia++
	}
	return nil
}

// ToRevisionResponse mapea el resultado a su salida.
func ToRevisionResponse(r *ResultadoRevision) *dto.RevisionResponse {
	return &dto.RevisionResponse{
		Fecha:               r.Fecha.Format(dto.FormatoFecha),
		PolizasRevisadas:    r.PolizasRevisadas,
		CuotasMarcadasMora:  r.CuotasMarcadasMora,
		PolizasMarcadasMora: r.PolizasMarcadasMora,
		PolizasMarcadasDia:  r.PolizasMarcadasDia,
		Errores:             r.Errores,
	}
}
