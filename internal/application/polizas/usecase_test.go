package polizas_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/infrastructure/memoria"
	"github.com/assecol/seguros-api/pkg/logger"
)

type entorno struct {
	store    *memoria.Store
	uc       *polizas.PolizaUseCase
	logs     *bytes.Buffer
	vida     string
	soat     string
	vehiculo string
	compania string
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()
	store := memoria.New()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf, "debug")

	vida := &entity.TipoSeguro{Nombre: "Vida", ComisionPorcentaje: decimal.NewFromInt(10), PorcentajeIVA: decimal.NewFromInt(19)}
	soat := &entity.TipoSeguro{Nombre: "Seguro SOAT", ComisionPorcentaje: decimal.NewFromInt(5), PorcentajeIVA: decimal.Zero}
	require.NoError(t, store.TiposSeguro().Create(ctx, vida))
	require.NoError(t, store.TiposSeguro().Create(ctx, soat))
	v := &entity.Vehiculo{ClienteID: "cli-1", Placa: "ABC123", Marca: "Mazda", Modelo: "3"}
	require.NoError(t, store.Vehiculos().Create(ctx, v))
	sura := &entity.CompaniaAseguradora{Nombre: "Sura"}
	require.NoError(t, store.Companias().Create(ctx, sura))

	uc := polizas.NewPolizaUseCase(store, store.Polizas(), polizas.NewDerivacionService(log))
	return &entorno{store: store, uc: uc, logs: buf, vida: vida.ID, soat: soat.ID, vehiculo: v.ID, compania: sura.ID}
}

func (e *entorno) crear(t *testing.T, numero, modo string, prima int64, plazo int) *dto.PolizaResponse {
	t.Helper()
	out, err := e.uc.Crear(context.Background(), dto.CreatePolizaRequest{
		NumeroPoliza:     numero,
		ClienteID:        "cli-1",
		TipoSeguroID:     e.vida,
		CompaniaID:       e.compania,
		FechaInicio:      "2024-01-15",
		FechaFin:         "2025-01-15",
		ValorPrimaSinIVA: decimal.NewFromInt(prima),
		ModoPago:         modo,
		PlazoMeses:       plazo,
	})
	require.NoError(t, err)
	return out
}

func TestCrear_MensualGeneraPlanCompleto(t *testing.T) {
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-001", entity.ModoPagoMensual, 1200000, 12)

	cuotas, err := e.store.Cuotas().ListByPoliza(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, cuotas, 12)
	inicio := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i, c := range cuotas {
		assert.Equal(t, i+1, c.NumeroCuota)
		assert.True(t, c.MontoCuota.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, inicio.AddDate(0, i+1, 0), c.FechaVencimiento)
		assert.Equal(t, entity.EstadoCuotaPendiente, c.Estado)
	}
	pagos, err := e.store.Pagos().ListByPoliza(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, pagos, "una póliza mensual no lleva registro de comisión")
	assert.Contains(t, e.logs.String(), "plan de cuotas creado")
}

func TestCrear_ContadoYCreditoCreanRegistroDeComision(t *testing.T) {
	for _, modo := range []string{entity.ModoPagoContado, entity.ModoPagoCredito} {
		t.Run(modo, func(t *testing.T) {
			e := nuevoEntorno(t)
			p := e.crear(t, "POL-"+modo, modo, 1000000, 0)

			reg, err := e.store.Pagos().GetRegistroComision(context.Background(), p.ID)
			require.NoError(t, err)
			require.NotNil(t, reg)
			assert.Nil(t, reg.CuotaID)
			assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(100000)))
			assert.Equal(t, entity.EstadoComisionPendiente, reg.EstadoComision)
			assert.Equal(t, entity.NotaComisionAutomatica, reg.Notas)
			assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), reg.FechaPago)
			assert.Equal(t, 12, p.PlazoMeses)

			cuotas, _ := e.store.Cuotas().ListByPoliza(context.Background(), p.ID)
			assert.Empty(t, cuotas)
		})
	}
}

func TestCrear_ComisionCeroNoCreaRegistro(t *testing.T) {
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-002", entity.ModoPagoContado, 0, 0)

	reg, err := e.store.Pagos().GetRegistroComision(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestCrear_FalloDelPlanAbortaElGuardado(t *testing.T) {
	e := nuevoEntorno(t)
	e.store.FallarEn(memoria.OpCuotasCreateBatch, errors.New("disco lleno"))

	_, err := e.uc.Crear(context.Background(), dto.CreatePolizaRequest{
		NumeroPoliza: "POL-003", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-15", FechaFin: "2025-01-15",
		ValorPrimaSinIVA: decimal.NewFromInt(1200000), ModoPago: entity.ModoPagoMensual, PlazoMeses: 12,
	})
	require.Error(t, err)

	p, err := e.store.Polizas().GetByNumero(context.Background(), "POL-003")
	require.NoError(t, err)
	assert.Nil(t, p, "la póliza no debe existir sin su plan de cuotas")
	assert.Contains(t, e.logs.String(), "error creando plan de cuotas")
}

func TestCrear_FalloDelRegistroDeComisionAbortaElGuardado(t *testing.T) {
	e := nuevoEntorno(t)
	e.store.FallarEn(memoria.OpPagoCreate, errors.New("timeout"))

	_, err := e.uc.Crear(context.Background(), dto.CreatePolizaRequest{
		NumeroPoliza: "POL-004", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-15", FechaFin: "2025-01-15",
		ValorPrimaSinIVA: decimal.NewFromInt(500000), ModoPago: entity.ModoPagoContado,
	})
	require.Error(t, err)

	p, _ := e.store.Polizas().GetByNumero(context.Background(), "POL-004")
	assert.Nil(t, p)
}

func TestCrear_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	base := dto.CreatePolizaRequest{
		NumeroPoliza: "POL-005", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-15", FechaFin: "2025-01-15",
		ValorPrimaSinIVA: decimal.NewFromInt(1000), ModoPago: entity.ModoPagoContado,
	}
	casos := []struct {
		nombre string
		mutar  func(r *dto.CreatePolizaRequest)
	}{
		{"fecha inválida", func(r *dto.CreatePolizaRequest) { r.FechaInicio = "15/01/2024" }},
		{"fin antes del inicio", func(r *dto.CreatePolizaRequest) { r.FechaFin = "2023-01-01" }},
		{"prima negativa", func(r *dto.CreatePolizaRequest) { r.ValorPrimaSinIVA = decimal.NewFromInt(-1) }},
		{"modo desconocido", func(r *dto.CreatePolizaRequest) { r.ModoPago = "SEMANAL" }},
		{"plazo negativo", func(r *dto.CreatePolizaRequest) { r.PlazoMeses = -3 }},
		{"tipo inexistente", func(r *dto.CreatePolizaRequest) { r.TipoSeguroID = "no-existe" }},
		{"compañía inexistente", func(r *dto.CreatePolizaRequest) { r.CompaniaID = "no-existe" }},
		{"sin compañía", func(r *dto.CreatePolizaRequest) { r.CompaniaID = "" }},
		{"vehículo inexistente", func(r *dto.CreatePolizaRequest) { v := "no-existe"; r.VehiculoID = &v }},
		{"número de póliza vacío", func(r *dto.CreatePolizaRequest) { r.NumeroPoliza = "  " }},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			req := base
			c.mutar(&req)
			_, err := e.uc.Crear(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCrear_NumeroDuplicado(t *testing.T) {
	e := nuevoEntorno(t)
	e.crear(t, "POL-006", entity.ModoPagoContado, 1000, 0)

	_, err := e.uc.Crear(context.Background(), dto.CreatePolizaRequest{
		NumeroPoliza: "POL-006", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-15", FechaFin: "2025-01-15",
		ValorPrimaSinIVA: decimal.NewFromInt(1000), ModoPago: entity.ModoPagoContado,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestActualizar_ActivaRecalculaComisionSinTocarLiquidacion(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-007", entity.ModoPagoContado, 1000000, 0)
	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	require.NoError(t, e.store.Pagos().UpdateEstadoComision(ctx, reg.ID, entity.EstadoComisionLiquidada))

	nueva := decimal.NewFromInt(2000000)
	out, err := e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{ValorPrimaSinIVA: &nueva})
	require.NoError(t, err)
	assert.True(t, out.ValorComision.Equal(decimal.NewFromInt(200000)))

	reg, _ = e.store.Pagos().GetRegistroComision(ctx, p.ID)
	require.NotNil(t, reg)
	assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(200000)))
	assert.Equal(t, entity.EstadoComisionLiquidada, reg.EstadoComision)
	assert.Contains(t, e.logs.String(), "registro de comisión actualizado")
}

func TestActualizar_CanceladaNoTocaComision(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-008", entity.ModoPagoContado, 1000000, 0)
	cancelada := entity.EstadoPolizaCancelada
	_, err := e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{Estado: &cancelada})
	require.NoError(t, err)

	nueva := decimal.NewFromInt(3000000)
	_, err = e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{ValorPrimaSinIVA: &nueva})
	require.NoError(t, err)

	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	require.NotNil(t, reg)
	assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(100000)))
}

func TestActualizar_CreaRegistroFaltante(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-009", entity.ModoPagoCredito, 0, 6)

	nueva := decimal.NewFromInt(600000)
	_, err := e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{ValorPrimaSinIVA: &nueva})
	require.NoError(t, err)

	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	require.NotNil(t, reg)
	assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, entity.NotaComisionActualizacion, reg.Notas)
}

func TestActualizar_FalloDeConciliacionNoImpideLaEdicion(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-010", entity.ModoPagoContado, 1000000, 0)
	e.store.FallarEn(memoria.OpPagoUpdateMonto, errors.New("lock timeout"))

	nueva := decimal.NewFromInt(1500000)
	_, err := e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{ValorPrimaSinIVA: &nueva})
	require.NoError(t, err)

	guardada, _ := e.store.Polizas().GetByID(ctx, p.ID)
	assert.True(t, guardada.ValorPrimaSinIVA.Equal(nueva))
	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(100000)))
	assert.Contains(t, e.logs.String(), "error conciliando comisión")
	assert.Contains(t, e.logs.String(), "POL-010")
}

func TestActualizar_NoRegeneraCuotas(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-011", entity.ModoPagoMensual, 1200000, 12)

	nueva := decimal.NewFromInt(2400000)
	_, err := e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{ValorPrimaSinIVA: &nueva})
	require.NoError(t, err)

	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, p.ID)
	require.Len(t, cuotas, 12)
	assert.True(t, cuotas[0].MontoCuota.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 1, e.store.Llamadas(memoria.OpCuotasCreateBatch))
}

func TestActualizar_NoExiste(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Actualizar(context.Background(), "no-existe", dto.UpdatePolizaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSOAT_PropagaFechaFinAlVehiculoEnCadaGuardado(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "SOAT-1", ClienteID: "cli-1", TipoSeguroID: e.soat, CompaniaID: e.compania, VehiculoID: &e.vehiculo,
		FechaInicio: "2024-03-01", FechaFin: "2025-03-01",
		ValorPrimaSinIVA: decimal.NewFromInt(700000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	v, _ := e.store.Vehiculos().GetByID(ctx, e.vehiculo)
	require.NotNil(t, v.SOATVencimientoRecordatorio)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *v.SOATVencimientoRecordatorio)

	fin := "2025-04-15"
	_, err = e.uc.Actualizar(ctx, p.ID, dto.UpdatePolizaRequest{FechaFin: &fin})
	require.NoError(t, err)
	v, _ = e.store.Vehiculos().GetByID(ctx, e.vehiculo)
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), *v.SOATVencimientoRecordatorio)
}

func TestSOAT_TipoNoSOATNoTocaVehiculo(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "VIDA-1", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania, VehiculoID: &e.vehiculo,
		FechaInicio: "2024-03-01", FechaFin: "2025-03-01",
		ValorPrimaSinIVA: decimal.NewFromInt(700000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	v, _ := e.store.Vehiculos().GetByID(ctx, e.vehiculo)
	assert.Nil(t, v.SOATVencimientoRecordatorio)
}

func TestSOAT_FalloNoAbortaElGuardado(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	e.store.FallarEn(memoria.OpVehiculoRecordatorio, errors.New("vehículo bloqueado"))

	p, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "SOAT-2", ClienteID: "cli-1", TipoSeguroID: e.soat, CompaniaID: e.compania, VehiculoID: &e.vehiculo,
		FechaInicio: "2024-03-01", FechaFin: "2025-03-01",
		ValorPrimaSinIVA: decimal.NewFromInt(700000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	guardada, _ := e.store.Polizas().GetByID(ctx, p.ID)
	assert.NotNil(t, guardada)
	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	assert.NotNil(t, reg)
	assert.Contains(t, e.logs.String(), "error actualizando recordatorio SOAT")
}

func TestCancelar_ContadoGuardaProrrateoYNoReconciliaComision(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "POL-012", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-01", FechaFin: "2025-01-01",
		ValorPrimaSinIVA: decimal.NewFromInt(1000000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	out, err := e.uc.Cancelar(ctx, p.ID, dto.CancelarPolizaRequest{FechaCancelacion: "2024-07-02", Motivo: "venta del vehículo"})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPolizaCancelada, out.Estado)
	require.NotNil(t, out.MontoDevolucion)
	require.NotNil(t, out.ComisionDevuelta)
	assert.Equal(t, "500000", out.MontoDevolucion.String())
	assert.Equal(t, "50000", out.ComisionDevuelta.String())
	require.NotNil(t, out.FechaCancelacion)
	assert.Equal(t, "2024-07-02", *out.FechaCancelacion)

	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)
	assert.True(t, reg.MontoPagado.Equal(decimal.NewFromInt(100000)))

	_, err = e.uc.Cancelar(ctx, p.ID, dto.CancelarPolizaRequest{FechaCancelacion: "2024-08-01"})
	assert.ErrorIs(t, err, domain.ErrPolizaNoActiva)
}

func TestCancelar_MensualNoCalculaDevolucion(t *testing.T) {
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-013", entity.ModoPagoMensual, 1200000, 12)

	out, err := e.uc.Cancelar(context.Background(), p.ID, dto.CancelarPolizaRequest{FechaCancelacion: "2024-06-01"})
	require.NoError(t, err)
	assert.Nil(t, out.MontoDevolucion)
	assert.Nil(t, out.ComisionDevuelta)
}

func TestPrevisualizarCancelacion_NoPersiste(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "POL-014", ClienteID: "cli-1", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-01-01", FechaFin: "2025-01-01",
		ValorPrimaSinIVA: decimal.NewFromInt(1000000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	prev, err := e.uc.PrevisualizarCancelacion(ctx, p.ID, dto.CancelarPolizaRequest{FechaCancelacion: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, prev.Aplica)
	assert.Equal(t, "1000000", prev.MontoDevolucion.String())

	guardada, err := e.uc.Obtener(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPolizaActiva, guardada.Estado)
	assert.Nil(t, guardada.FechaCancelacion)
	assert.Nil(t, guardada.MontoDevolucion)
}

func TestObtener_ValoresDerivados(t *testing.T) {
	e := nuevoEntorno(t)
	p := e.crear(t, "POL-015", entity.ModoPagoContado, 1000000, 0)

	out, err := e.uc.Obtener(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, out.ValorIVA.Equal(decimal.NewFromInt(190000)))
	assert.True(t, out.ValorTotalAPagar.Equal(decimal.NewFromInt(1190000)))
	assert.True(t, out.ValorComision.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "Vida", out.TipoSeguro)

	_, err = e.uc.Obtener(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListar_FiltraYTotaliza(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	a := e.crear(t, "LIS-1", entity.ModoPagoContado, 1000000, 0)
	_, err := e.uc.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "LIS-2", ClienteID: "cli-2", TipoSeguroID: e.vida, CompaniaID: e.compania,
		FechaInicio: "2024-02-01", FechaFin: "2025-02-01",
		ValorPrimaSinIVA: decimal.NewFromInt(500000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)
	require.NoError(t, e.store.Polizas().ActualizarEstadoCartera(ctx, a.ID, entity.EstadoCarteraEnMora))

	todas, err := e.uc.Listar(ctx, dto.ListarPolizasRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, todas.Total)
	assert.Equal(t, "1785000", todas.TotalVentas.String())
	assert.Equal(t, "150000", todas.TotalComisiones.String())
	assert.Equal(t, 1, todas.PolizasEnMora)
	assert.Equal(t, "Sura", todas.Polizas[0].Compania)

	delCliente, err := e.uc.Listar(ctx, dto.ListarPolizasRequest{ClienteID: "cli-2"})
	require.NoError(t, err)
	require.Len(t, delCliente.Polizas, 1)
	assert.Equal(t, "LIS-2", delCliente.Polizas[0].NumeroPoliza)
	assert.Equal(t, "595000", delCliente.TotalVentas.String())
	assert.Equal(t, 0, delCliente.PolizasEnMora)

	enMora, err := e.uc.Listar(ctx, dto.ListarPolizasRequest{EstadoCartera: entity.EstadoCarteraEnMora})
	require.NoError(t, err)
	require.Len(t, enMora.Polizas, 1)
	assert.Equal(t, a.ID, enMora.Polizas[0].ID)

	otra, err := e.uc.Listar(ctx, dto.ListarPolizasRequest{CompaniaID: "otra"})
	require.NoError(t, err)
	assert.Empty(t, otra.Polizas)
	assert.True(t, otra.TotalVentas.IsZero())

	_, err = e.uc.Listar(ctx, dto.ListarPolizasRequest{EstadoCartera: "ATRASADA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrear_CargaNombreDeCompania(t *testing.T) {
	e := nuevoEntorno(t)
	p := e.crear(t, "COM-1", entity.ModoPagoContado, 1000, 0)
	assert.Equal(t, e.compania, p.CompaniaID)
	assert.Equal(t, "Sura", p.Compania)

	guardada, err := e.uc.Obtener(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sura", guardada.Compania)
}
