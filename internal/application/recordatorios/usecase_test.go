package recordatorios_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/infrastructure/memoria"
	"github.com/assecol/seguros-api/pkg/logger"
)

type correo struct {
	para, asunto, cuerpo string
}

type notifierFake struct {
	enviados []correo
	fallarA  string
}

func (n *notifierFake) Enviar(_ context.Context, para, asunto, cuerpo string) error {
	if para == n.fallarA {
		return errors.New("smtp: buzón no disponible")
	}
	n.enviados = append(n.enviados, correo{para, asunto, cuerpo})
	return nil
}

func sembrar(t *testing.T) *memoria.Store {
	t.Helper()
	ctx := context.Background()
	s := memoria.New()
	tipo := &entity.TipoSeguro{Nombre: "Hogar", ComisionPorcentaje: decimal.NewFromInt(10), PorcentajeIVA: decimal.NewFromInt(19)}
	require.NoError(t, s.TiposSeguro().Create(ctx, tipo))
	for _, u := range []*entity.User{
		{ID: "cli-1", Email: "ana@correo.co", Name: "Ana Gómez", Role: entity.RoleCliente, Status: "active"},
		{ID: "cli-2", Email: "luis@correo.co", Name: "Luis Pérez", Role: entity.RoleCliente, Status: "active"},
	} {
		require.NoError(t, s.Users().Create(ctx, u))
	}
	polizas := []struct {
		id, numero, cliente, fin, estado string
	}{
		{"p1", "HOG-1", "cli-1", "2024-06-10", entity.EstadoPolizaActiva},
		{"p2", "HOG-2", "cli-2", "2024-07-01", entity.EstadoPolizaActiva},
		{"p3", "HOG-3", "cli-1", "2024-07-20", entity.EstadoPolizaActiva},
		{"p4", "HOG-4", "cli-2", "2024-06-15", entity.EstadoPolizaCancelada},
		{"p5", "HOG-5", "cli-1", "2024-05-31", entity.EstadoPolizaActiva},
	}
	for _, p := range polizas {
		fin, _ := time.Parse("2006-01-02", p.fin)
		require.NoError(t, s.Polizas().Create(ctx, &entity.Poliza{
			ID: p.id, NumeroPoliza: p.numero, ClienteID: p.cliente, TipoSeguroID: tipo.ID,
			FechaInicio: fin.AddDate(-1, 0, 0), FechaFin: fin, ModoPago: entity.ModoPagoContado,
			Estado: p.estado, EstadoCartera: entity.EstadoCarteraAlDia,
		}))
	}
	return s
}

var hoy = time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)

func TestEnviarRecordatorios_VentanaYCopiaAlAdmin(t *testing.T) {
	s := sembrar(t)
	n := &notifierFake{}
	uc := recordatorios.NewRecordatorioUseCase(s.Polizas(), n, "admin@agencia.co", 30, logger.Nop())

	res, err := uc.EnviarRecordatorios(context.Background(), hoy)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Encontradas, "HOG-1 y HOG-2 vencen entre el 1 de junio y el 1 de julio")
	assert.Equal(t, 2, res.Enviadas)
	assert.Zero(t, res.Errores)

	require.Len(t, n.enviados, 4)
	assert.Equal(t, "ana@correo.co", n.enviados[0].para)
	assert.Equal(t, "Recordatorio: Tu póliza #HOG-1 está por vencer", n.enviados[0].asunto)
	assert.True(t, strings.Contains(n.enviados[0].cuerpo, "2024-06-10"))
	assert.Equal(t, "admin@agencia.co", n.enviados[1].para)
	assert.Equal(t, "Alerta Vencimiento: Póliza de Ana Gómez", n.enviados[1].asunto)
}

func TestEnviarRecordatorios_SinAdminSoloCliente(t *testing.T) {
	s := sembrar(t)
	n := &notifierFake{}
	uc := recordatorios.NewRecordatorioUseCase(s.Polizas(), n, "", 30, logger.Nop())

	res, err := uc.EnviarRecordatorios(context.Background(), hoy)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enviadas)
	assert.Len(t, n.enviados, 2)
}

func TestEnviarRecordatorios_FallaDeUnClienteNoDetieneElLote(t *testing.T) {
	s := sembrar(t)
	n := &notifierFake{fallarA: "ana@correo.co"}
	uc := recordatorios.NewRecordatorioUseCase(s.Polizas(), n, "admin@agencia.co", 30, logger.Nop())

	res, err := uc.EnviarRecordatorios(context.Background(), hoy)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Encontradas)
	assert.Equal(t, 1, res.Enviadas)
	assert.Equal(t, 1, res.Errores)
}

func TestEnviarRecordatorios_SinPolizas(t *testing.T) {
	s := memoria.New()
	n := &notifierFake{}
	uc := recordatorios.NewRecordatorioUseCase(s.Polizas(), n, "admin@agencia.co", 30, logger.Nop())

	res, err := uc.EnviarRecordatorios(context.Background(), hoy)
	require.NoError(t, err)
	assert.Zero(t, res.Encontradas)
	assert.Empty(t, n.enviados)
}
