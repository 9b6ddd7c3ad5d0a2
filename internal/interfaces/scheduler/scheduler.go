// Package scheduler programa las tareas diarias de cartera (revisión de mora y
// recordatorios de vencimiento) con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/pkg/config"
	"github.com/assecol/seguros-api/pkg/logger"
)

// Revisor ejecuta la revisión de cartera.
type Revisor interface {
	Revisar(ctx context.Context, hoy time.Time) (*cartera.ResultadoRevision, error)
}

// Recordador envía los recordatorios de vencimiento.
type Recordador interface {
	EnviarRecordatorios(ctx context.Context, hoy time.Time) (*recordatorios.Resultado, error)
}

// timeoutTarea tope de duración de una ejecución programada.
const timeoutTarea = 30 * time.Minute

// Scheduler envuelve el cron con las dos tareas de la agencia.
type Scheduler struct {
	c          *cron.Cron
	revisor    Revisor
	recordador Recordador
	loc        *time.Location
	log        *logger.Logger
	now        func() time.Time
}

// New registra las tareas. recordador puede ser nil (sin SMTP no se programan recordatorios).
// Una ejecución que aún no termina hace que se salte la siguiente.
func New(cfg config.CarteraConfig, revisor Revisor, recordador Recordador, log *logger.Logger) (*Scheduler, error) {
	loc := cfg.Location()
	s := &Scheduler{
		revisor:    revisor,
		recordador: recordador,
		loc:        loc,
		log:        log.Component("scheduler"),
		now:        time.Now,
	}
	cl := cronLogger{log: s.log}
	s.c = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if _, err := s.c.AddFunc(cfg.ReviewCron, func() { s.EjecutarRevision(context.Background()) }); err != nil {
		return nil, fmt.Errorf("scheduler: CARTERA_REVIEW_CRON %q: %w", cfg.ReviewCron, err)
	}
	if recordador != nil {
		if _, err := s.c.AddFunc(cfg.RecordatorioCron, func() { s.EjecutarRecordatorios(context.Background()) }); err != nil {
			return nil, fmt.Errorf("scheduler: RECORDATORIO_CRON %q: %w", cfg.RecordatorioCron, err)
		}
	}
	return s, nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
	s.log.Info().Int("tareas", len(s.c.Entries())).Str("zona", s.loc.String()).Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que terminen las tareas en curso (o a que ctx expire).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con tareas en curso")
	}
}

// Tareas número de tareas programadas.
func (s *Scheduler) Tareas() int { return len(s.c.Entries()) }

// EjecutarRevision corre la revisión de cartera con la fecha local de la agencia.
func (s *Scheduler) EjecutarRevision(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, timeoutTarea)
	defer cancel()
	if _, err := s.revisor.Revisar(ctx, s.now().In(s.loc)); err != nil {
		s.log.Error().Err(err).Msg("revisión de cartera programada fallida")
	}
}

// EjecutarRecordatorios envía los recordatorios con la fecha local de la agencia.
func (s *Scheduler) EjecutarRecordatorios(ctx context.Context) {
	if s.recordador == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, timeoutTarea)
	defer cancel()
	if _, err := s.recordador.EnviarRecordatorios(ctx, s.now().In(s.loc)); err != nil {
		s.log.Error().Err(err).Msg("envío de recordatorios programado fallido")
	}
}

// cronLogger adapta el logger de la app a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
