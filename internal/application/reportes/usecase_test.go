package reportes_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/application/reportes"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/infrastructure/memoria"
	"github.com/assecol/seguros-api/pkg/logger"
)

func dia(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

func TestResumenComisiones(t *testing.T) {
	ctx := context.Background()
	s := memoria.New()
	sura := &entity.CompaniaAseguradora{Nombre: "Sura"}
	allianz := &entity.CompaniaAseguradora{Nombre: "Allianz"}
	require.NoError(t, s.Companias().Create(ctx, sura))
	require.NoError(t, s.Companias().Create(ctx, allianz))
	polizas := []*entity.Poliza{
		{ID: "p1", NumeroPoliza: "A-1", CompaniaID: sura.ID, FechaInicio: dia(3, 1), Estado: entity.EstadoPolizaActiva, EstadoCartera: entity.EstadoCarteraAlDia},
		{ID: "p2", NumeroPoliza: "A-2", CompaniaID: allianz.ID, FechaInicio: dia(3, 20), Estado: entity.EstadoPolizaActiva, EstadoCartera: entity.EstadoCarteraEnMora},
		{ID: "p3", NumeroPoliza: "A-3", CompaniaID: sura.ID, FechaInicio: dia(5, 2), Estado: entity.EstadoPolizaActiva, EstadoCartera: entity.EstadoCarteraAlDia},
	}
	for _, p := range polizas {
		require.NoError(t, s.Polizas().Create(ctx, p))
	}
	cuota := "c-1"
	pagos := []*entity.Pago{
		{PolizaID: "p1", FechaPago: dia(3, 1), MontoPagado: decimal.NewFromInt(100000), EstadoComision: entity.EstadoComisionPendiente},
		{PolizaID: "p2", FechaPago: dia(3, 20), MontoPagado: decimal.NewFromInt(50000), EstadoComision: entity.EstadoComisionLiquidada},
		{PolizaID: "p3", FechaPago: dia(5, 2), MontoPagado: decimal.NewFromInt(70000), EstadoComision: entity.EstadoComisionPendiente},
		{PolizaID: "p2", CuotaID: &cuota, FechaPago: dia(3, 25), MontoPagado: decimal.NewFromInt(999), EstadoComision: entity.EstadoComisionPendiente},
	}
	for _, p := range pagos {
		require.NoError(t, s.Pagos().Create(ctx, p))
	}

	uc := reportes.NewReporteUseCase(s.Pagos(), s.Reportes(), s.Polizas(), s.Vehiculos())
	out, err := uc.ResumenComisiones(ctx, dia(3, 1), dia(3, 31))
	require.NoError(t, err)
	assert.True(t, out.ComisionPendiente.Equal(decimal.NewFromInt(100000)))
	assert.True(t, out.ComisionLiquidada.Equal(decimal.NewFromInt(50000)))
	assert.True(t, out.ComisionTotal.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, 2, out.PolizasNuevas)
	assert.Equal(t, 1, out.PolizasEnMora)
	assert.Equal(t, "2024-03-01", out.Desde)

	require.Len(t, out.PorCompania, 2)
	assert.Equal(t, "Sura", out.PorCompania[0].Compania)
	assert.True(t, out.PorCompania[0].Pendiente.Equal(decimal.NewFromInt(100000)))
	assert.True(t, out.PorCompania[0].Total.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "Allianz", out.PorCompania[1].Compania)
	assert.True(t, out.PorCompania[1].Liquidada.Equal(decimal.NewFromInt(50000)))

	_, err = uc.ResumenComisiones(ctx, dia(4, 1), dia(3, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Las pólizas SOAT llegan al tablero a través del recordatorio que la derivación escribe en el
// vehículo al guardar.
func TestTablero_AlertasDeVencimiento(t *testing.T) {
	ctx := context.Background()
	s := memoria.New()
	hoy := dia(6, 1)

	soat := &entity.TipoSeguro{Nombre: "SOAT", ComisionPorcentaje: decimal.NewFromInt(5)}
	vida := &entity.TipoSeguro{Nombre: "Vida", ComisionPorcentaje: decimal.NewFromInt(10), PorcentajeIVA: decimal.NewFromInt(19)}
	require.NoError(t, s.TiposSeguro().Create(ctx, soat))
	require.NoError(t, s.TiposSeguro().Create(ctx, vida))
	sura := &entity.CompaniaAseguradora{Nombre: "Sura"}
	require.NoError(t, s.Companias().Create(ctx, sura))
	for _, u := range []*entity.User{
		{ID: "cli-1", Email: "ana@example.com", Name: "Ana", Role: entity.RoleCliente},
		{ID: "cli-2", Email: "luis@example.com", Name: "Luis", Role: entity.RoleCliente},
		{ID: "ase-1", Email: "asesor@example.com", Name: "Asesor", Role: entity.RoleAsesor},
	} {
		require.NoError(t, s.Users().Create(ctx, u))
	}
	cerca := &entity.Vehiculo{ClienteID: "cli-1", Placa: "AAA111"}
	lejos := &entity.Vehiculo{ClienteID: "cli-2", Placa: "BBB222"}
	require.NoError(t, s.Vehiculos().Create(ctx, cerca))
	require.NoError(t, s.Vehiculos().Create(ctx, lejos))

	polizaUC := polizas.NewPolizaUseCase(s, s.Polizas(), polizas.NewDerivacionService(logger.Nop()))
	crear := func(numero, cliente, tipo string, vehiculo *string, fin string) {
		_, err := polizaUC.Crear(ctx, dto.CreatePolizaRequest{
			NumeroPoliza: numero, ClienteID: cliente, TipoSeguroID: tipo, CompaniaID: sura.ID, VehiculoID: vehiculo,
			FechaInicio: "2023-06-20", FechaFin: fin,
			ValorPrimaSinIVA: decimal.NewFromInt(500000), ModoPago: entity.ModoPagoContado,
		})
		require.NoError(t, err)
	}
	crear("SOAT-1", "cli-1", soat.ID, &cerca.ID, "2024-06-10") // SOAT a 9 días
	crear("SOAT-2", "cli-2", soat.ID, &lejos.ID, "2024-06-20") // SOAT a 19 días: fuera de los 15
	crear("VIDA-1", "cli-1", vida.ID, nil, "2024-07-01")       // a 30 días: dentro
	crear("VIDA-2", "cli-2", vida.ID, nil, "2024-08-15")       // fuera de los 30
	crear("VIDA-3", "cli-2", vida.ID, nil, "2024-05-31")       // ya venció

	uc := reportes.NewReporteUseCase(s.Pagos(), s.Reportes(), s.Polizas(), s.Vehiculos())
	out, err := uc.Tablero(ctx, hoy)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", out.Fecha)
	assert.Equal(t, 2, out.TotalClientes)
	assert.Equal(t, 5, out.PolizasActivas)

	require.Len(t, out.ListaSOATsAVencer, 1)
	assert.Equal(t, "AAA111", out.ListaSOATsAVencer[0].Placa)
	assert.Equal(t, "2024-06-10", out.ListaSOATsAVencer[0].FechaRecordatorio)

	assert.Equal(t, 3, out.PolizasPorVencer)
	require.Len(t, out.ListaPolizasAVencer, 3)
	assert.Equal(t, "SOAT-1", out.ListaPolizasAVencer[0].NumeroPoliza)
	assert.Equal(t, "Ana", out.ListaPolizasAVencer[0].ClienteNombre)
	assert.Equal(t, "SOAT-2", out.ListaPolizasAVencer[1].NumeroPoliza)
	assert.Equal(t, "VIDA-1", out.ListaPolizasAVencer[2].NumeroPoliza)
}
