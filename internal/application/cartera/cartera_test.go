package cartera_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/application/ports"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/infrastructure/memoria"
	"github.com/assecol/seguros-api/pkg/logger"
)

type comprobantesFake struct {
	keys []string
	data []byte
	err  error
}

func (f *comprobantesFake) Guardar(_ context.Context, key, _ string, r io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.keys = append(f.keys, key)
	f.data = b
	return key, nil
}

type pdfFake struct {
	detalle *dto.DetalleCarteraResponse
}

func (f *pdfFake) GenerarEstadoCuenta(_ context.Context, d *dto.DetalleCarteraResponse) ([]byte, error) {
	f.detalle = d
	return []byte("%PDF-1.4"), nil
}

type entorno struct {
	store    *memoria.Store
	polizas  *polizas.PolizaUseCase
	revision *cartera.RevisionUseCase
	cartera  *cartera.CarteraUseCase
	archivos *comprobantesFake
	pdf      *pdfFake
	logs     *bytes.Buffer
	tipo     string
	compania string
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	store := memoria.New()
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf, "debug")
	tipo := &entity.TipoSeguro{Nombre: "Automóvil", ComisionPorcentaje: decimal.NewFromInt(10), PorcentajeIVA: decimal.NewFromInt(19)}
	require.NoError(t, store.TiposSeguro().Create(context.Background(), tipo))
	compania := &entity.CompaniaAseguradora{Nombre: "Allianz"}
	require.NoError(t, store.Companias().Create(context.Background(), compania))

	archivos := &comprobantesFake{}
	pdf := &pdfFake{}
	return &entorno{
		store:    store,
		polizas:  polizas.NewPolizaUseCase(store, store.Polizas(), polizas.NewDerivacionService(log)),
		revision: cartera.NewRevisionUseCase(store, store.Polizas(), log),
		cartera:  cartera.NewCarteraUseCase(store, store.Repos(), archivos, pdf, log),
		archivos: archivos,
		pdf:      pdf,
		logs:     buf,
		tipo:     tipo.ID,
		compania: compania.ID,
	}
}

// mensual crea una póliza MENSUAL de 6 cuotas de 100.000 que vencen el día 10 desde febrero 2024.
func (e *entorno) mensual(t *testing.T, numero string) string {
	t.Helper()
	p, err := e.polizas.Crear(context.Background(), dto.CreatePolizaRequest{
		NumeroPoliza: numero, ClienteID: "cli-1", TipoSeguroID: e.tipo, CompaniaID: e.compania,
		FechaInicio: "2024-01-10", FechaFin: "2025-01-10",
		ValorPrimaSinIVA: decimal.NewFromInt(600000), ModoPago: entity.ModoPagoMensual, PlazoMeses: 6,
	})
	require.NoError(t, err)
	return p.ID
}

func fecha(s string) time.Time {
	t, _ := time.Parse(dto.FormatoFecha, s)
	return t
}

func TestRevisar_MarcaVencidasYPolizaEnMora(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-1")

	res, err := e.revision.Revisar(ctx, fecha("2024-04-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.PolizasRevisadas)
	assert.Equal(t, int64(3), res.CuotasMarcadasMora, "vencen 10-feb, 10-mar y 10-abr")
	assert.Equal(t, 1, res.PolizasMarcadasMora)
	assert.Equal(t, 0, res.PolizasMarcadasDia)

	p, _ := e.store.Polizas().GetByID(ctx, id)
	assert.Equal(t, entity.EstadoCarteraEnMora, p.EstadoCartera)
	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)
	assert.Equal(t, entity.EstadoCuotaEnMora, cuotas[2].Estado)
	assert.Equal(t, entity.EstadoCuotaPendiente, cuotas[3].Estado)
}

func TestRevisar_VenceSoloAntesDeHoy(t *testing.T) {
	e := nuevoEntorno(t)
	e.mensual(t, "MEN-2")

	res, err := e.revision.Revisar(context.Background(), fecha("2024-02-10"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CuotasMarcadasMora, "la cuota que vence hoy aún no está en mora")
	assert.Equal(t, 0, res.PolizasMarcadasMora)
}

func TestRevisar_Idempotente(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	e.mensual(t, "MEN-3")
	e.mensual(t, "MEN-4")

	_, err := e.revision.Revisar(ctx, fecha("2024-05-01"))
	require.NoError(t, err)
	escriturasAntes := e.store.Llamadas(memoria.OpPolizaEstadoCartera)

	res, err := e.revision.Revisar(ctx, fecha("2024-05-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.PolizasRevisadas)
	assert.Zero(t, res.CuotasMarcadasMora)
	assert.Zero(t, res.PolizasMarcadasMora)
	assert.Zero(t, res.PolizasMarcadasDia)
	assert.Equal(t, escriturasAntes, e.store.Llamadas(memoria.OpPolizaEstadoCartera), "sin escrituras redundantes")
}

func TestRevisar_IgnoraPolizasNoMensualesONoActivas(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-5")
	_, err := e.polizas.Cancelar(ctx, id, dto.CancelarPolizaRequest{FechaCancelacion: "2024-02-01"})
	require.NoError(t, err)
	_, err = e.polizas.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "CON-1", ClienteID: "cli-1", TipoSeguroID: e.tipo, CompaniaID: e.compania,
		FechaInicio: "2024-01-10", FechaFin: "2025-01-10",
		ValorPrimaSinIVA: decimal.NewFromInt(600000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)

	res, err := e.revision.Revisar(ctx, fecha("2024-12-31"))
	require.NoError(t, err)
	assert.Zero(t, res.PolizasRevisadas)
	assert.Zero(t, res.CuotasMarcadasMora)
}

func TestRegistrarPagoCuota_YRevisionDevuelvenPolizaAlDia(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-6")
	_, err := e.revision.Revisar(ctx, fecha("2024-02-15"))
	require.NoError(t, err)

	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)
	require.Equal(t, entity.EstadoCuotaEnMora, cuotas[0].Estado)

	pago, err := e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{FechaPago: "2024-02-16"})
	require.NoError(t, err)
	require.NotNil(t, pago.CuotaID)
	assert.Equal(t, cuotas[0].ID, *pago.CuotaID)
	assert.True(t, pago.MontoPagado.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "Pago registrado automáticamente para la cuota #1.", pago.Notas)
	assert.Equal(t, "2024-02-16", pago.FechaPago)

	p, _ := e.store.Polizas().GetByID(ctx, id)
	assert.Equal(t, entity.EstadoCarteraAlDia, p.EstadoCartera)

	res, err := e.revision.Revisar(ctx, fecha("2024-02-16"))
	require.NoError(t, err)
	assert.Zero(t, res.PolizasMarcadasMora)
	assert.Zero(t, res.PolizasMarcadasDia, "ya estaba AL_DIA")
}

func TestRegistrarPagoCuota_ConOtraCuotaEnMoraSigueEnMora(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-7")
	_, err := e.revision.Revisar(ctx, fecha("2024-03-15"))
	require.NoError(t, err)

	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)
	_, err = e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{Notas: "consignación"})
	require.NoError(t, err)

	p, _ := e.store.Polizas().GetByID(ctx, id)
	assert.Equal(t, entity.EstadoCarteraEnMora, p.EstadoCartera)
}

func TestRegistrarPagoCuota_SegundoPagoRechazado(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-8")
	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)

	_, err := e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{})
	require.NoError(t, err)
	_, err = e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{})
	assert.ErrorIs(t, err, domain.ErrCuotaYaPagada)

	pagos, _ := e.store.Pagos().ListByPoliza(ctx, id)
	assert.Len(t, pagos, 1)
}

func TestRegistrarPagoCuota_CuotaInexistenteYFechaInvalida(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.cartera.RegistrarPagoCuota(context.Background(), "no-existe", dto.RegistrarPagoCuotaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.cartera.RegistrarPagoCuota(context.Background(), "no-existe", dto.RegistrarPagoCuotaRequest{FechaPago: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarcarCuotaEnMora_PasaPolizaAEnMora(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-9")
	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)

	require.NoError(t, e.cartera.MarcarCuotaEnMora(ctx, cuotas[4].ID))

	c, _ := e.store.Cuotas().GetByID(ctx, cuotas[4].ID)
	assert.Equal(t, entity.EstadoCuotaEnMora, c.Estado)
	p, _ := e.store.Polizas().GetByID(ctx, id)
	assert.Equal(t, entity.EstadoCarteraEnMora, p.EstadoCartera)
}

func TestRevisar_FallaEnUnaPolizaNoDetieneLasDemas(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	e.mensual(t, "MEN-10")
	e.mensual(t, "MEN-11")
	e.store.FallarEn(memoria.OpCuotasMarcarEnMora, errors.New("deadlock"))

	res, err := e.revision.Revisar(ctx, fecha("2024-03-15"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Errores)
	assert.Zero(t, res.PolizasRevisadas)
	assert.Contains(t, e.logs.String(), "error revisando cartera")
}

type txReentrante struct {
	ports.TxRunner
	alCorrer func()
}

func (t *txReentrante) Run(ctx context.Context, fn func(repos ports.Repos, savepoint ports.Savepoint) error) error {
	t.alCorrer()
	return t.TxRunner.Run(ctx, fn)
}

func TestRevisar_NoPermiteEjecucionesSimultaneas(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	e.mensual(t, "MEN-12")

	var errInterno error
	tx := &txReentrante{TxRunner: e.store}
	uc := cartera.NewRevisionUseCase(tx, e.store.Polizas(), logger.Nop())
	tx.alCorrer = func() { _, errInterno = uc.Revisar(ctx, fecha("2024-03-15")) }

	_, err := uc.Revisar(ctx, fecha("2024-03-15"))
	require.NoError(t, err)
	assert.ErrorIs(t, errInterno, domain.ErrRevisionEnCurso)

	_, err = uc.Revisar(ctx, fecha("2024-03-15"))
	assert.NoError(t, err, "al terminar se libera")
}

func TestCambiarEstadoComision(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	p, err := e.polizas.Crear(ctx, dto.CreatePolizaRequest{
		NumeroPoliza: "CON-2", ClienteID: "cli-1", TipoSeguroID: e.tipo, CompaniaID: e.compania,
		FechaInicio: "2024-01-10", FechaFin: "2025-01-10",
		ValorPrimaSinIVA: decimal.NewFromInt(600000), ModoPago: entity.ModoPagoContado,
	})
	require.NoError(t, err)
	reg, _ := e.store.Pagos().GetRegistroComision(ctx, p.ID)

	out, err := e.cartera.CambiarEstadoComision(ctx, reg.ID, dto.CambiarEstadoComisionRequest{Estado: entity.EstadoComisionLiquidada})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoComisionLiquidada, out.EstadoComision)

	out, err = e.cartera.CambiarEstadoComision(ctx, reg.ID, dto.CambiarEstadoComisionRequest{Estado: entity.EstadoComisionPendiente})
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoComisionPendiente, out.EstadoComision)

	_, err = e.cartera.CambiarEstadoComision(ctx, reg.ID, dto.CambiarEstadoComisionRequest{Estado: "PAGADA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjuntarComprobante(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-13")
	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)
	pago, err := e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{})
	require.NoError(t, err)

	out, err := e.cartera.AdjuntarComprobante(ctx, pago.ID, `C:\scans\recibo enero.pdf`, "application/pdf", []byte("contenido"))
	require.NoError(t, err)
	want := "comprobantes/" + id + "/" + pago.ID + "-recibo_enero.pdf"
	assert.Equal(t, want, out.Comprobante)
	assert.Equal(t, []string{want}, e.archivos.keys)
	assert.Equal(t, "contenido", string(e.archivos.data))

	guardado, _ := e.store.Pagos().GetByID(ctx, pago.ID)
	assert.Equal(t, want, guardado.ComprobanteKey)

	_, err = e.cartera.AdjuntarComprobante(ctx, pago.ID, "x.pdf", "application/pdf", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDetalleYEstadoCuenta(t *testing.T) {
	ctx := context.Background()
	e := nuevoEntorno(t)
	id := e.mensual(t, "MEN-14")
	_, err := e.revision.Revisar(ctx, fecha("2024-03-15"))
	require.NoError(t, err)
	cuotas, _ := e.store.Cuotas().ListByPoliza(ctx, id)
	_, err = e.cartera.RegistrarPagoCuota(ctx, cuotas[0].ID, dto.RegistrarPagoCuotaRequest{})
	require.NoError(t, err)

	d, err := e.cartera.Detalle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 6, d.Resumen.TotalCuotas)
	assert.Equal(t, 1, d.Resumen.Pagadas)
	assert.Equal(t, 1, d.Resumen.EnMora)
	assert.Equal(t, 4, d.Resumen.Pendientes)
	assert.True(t, d.Resumen.TotalPagado.Equal(decimal.NewFromInt(100000)))
	assert.True(t, d.Resumen.SaldoPendiente.Equal(decimal.NewFromInt(500000)))
	assert.Len(t, d.Pagos, 1)

	pdf, nombre, err := e.cartera.EstadoCuentaPDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "estado_cuenta_MEN-14.pdf", nombre)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	require.NotNil(t, e.pdf.detalle)
	assert.Equal(t, "MEN-14", e.pdf.detalle.Poliza.NumeroPoliza)

	_, err = e.cartera.Detalle(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
