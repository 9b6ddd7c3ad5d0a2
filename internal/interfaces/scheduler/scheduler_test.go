package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/pkg/config"
	"github.com/assecol/seguros-api/pkg/logger"
)

type revisorFake struct {
	hoy []time.Time
	err error
}

func (f *revisorFake) Revisar(_ context.Context, hoy time.Time) (*cartera.ResultadoRevision, error) {
	f.hoy = append(f.hoy, hoy)
	return &cartera.ResultadoRevision{}, f.err
}

type recordadorFake struct {
	llamadas int
}

func (f *recordadorFake) EnviarRecordatorios(context.Context, time.Time) (*recordatorios.Resultado, error) {
	f.llamadas++
	return &recordatorios.Resultado{}, nil
}

func configBase() config.CarteraConfig {
	return config.CarteraConfig{
		ReviewCron:       "0 6 * * *",
		RecordatorioCron: "0 8 * * *",
		Timezone:         "America/Bogota",
		RecordatorioDias: 30,
	}
}

func TestNew_ProgramaAmbasTareas(t *testing.T) {
	s, err := New(configBase(), &revisorFake{}, &recordadorFake{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Tareas())
}

func TestNew_SinCorreoSoloRevision(t *testing.T) {
	s, err := New(configBase(), &revisorFake{}, nil, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Tareas())
	s.EjecutarRecordatorios(context.Background())
}

func TestNew_ExpresionInvalida(t *testing.T) {
	cfg := configBase()
	cfg.ReviewCron = "cada mañana"
	_, err := New(cfg, &revisorFake{}, nil, logger.Nop())
	assert.Error(t, err)
}

// 03:00 UTC del 2 de marzo todavía es 1 de marzo en Bogotá (UTC-5).
func TestEjecutarRevision_UsaFechaLocal(t *testing.T) {
	rev := &revisorFake{}
	s, err := New(configBase(), rev, nil, logger.Nop())
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 3, 2, 3, 0, 0, 0, time.UTC) }

	s.EjecutarRevision(context.Background())

	require.Len(t, rev.hoy, 1)
	y, m, d := rev.hoy[0].Date()
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 1, d)
}

func TestEjecutarRevision_ErrorSeRegistra(t *testing.T) {
	buf := &bytes.Buffer{}
	s, err := New(configBase(), &revisorFake{err: errors.New("db caída")}, nil, logger.NewWithWriter(buf, "info"))
	require.NoError(t, err)

	s.EjecutarRevision(context.Background())

	assert.Contains(t, buf.String(), "revisión de cartera programada fallida")
	assert.Contains(t, buf.String(), "db caída")
}

func TestEjecutarRecordatorios(t *testing.T) {
	rec := &recordadorFake{}
	s, err := New(configBase(), &revisorFake{}, rec, logger.Nop())
	require.NoError(t, err)
	s.EjecutarRecordatorios(context.Background())
	assert.Equal(t, 1, rec.llamadas)
}
