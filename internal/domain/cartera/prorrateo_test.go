package cartera_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/domain/cartera"
	"github.com/assecol/seguros-api/internal/domain/entity"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// polizaContado: prima 1.000.000, comisión 10%, vigencia 2024-01-01 → 2025-01-01 (366 días).
func polizaContado(cancelacion string) *entity.Poliza {
	p := &entity.Poliza{
		NumeroPoliza:       "POL-PRORRATEO",
		ModoPago:           entity.ModoPagoContado,
		FechaInicio:        fecha("2024-01-01"),
		FechaFin:           fecha("2025-01-01"),
		ValorPrimaSinIVA:   decimal.NewFromInt(1_000_000),
		ComisionPorcentaje: decimal.NewFromInt(10),
		PorcentajeIVA:      decimal.NewFromInt(19),
	}
	if cancelacion != "" {
		f := fecha(cancelacion)
		p.FechaCancelacion = &f
	}
	return p
}

func TestProrrateo_CancelacionMismoDia_DevuelveTodo(t *testing.T) {
	dev, com := cartera.ProrrateoCancelacion(polizaContado("2024-01-01"))
	require.NotNil(t, dev)
	require.NotNil(t, com)

	assert.True(t, dev.Equal(decimal.NewFromInt(1_000_000)), "devolución = %s", dev)
	assert.True(t, com.Equal(decimal.NewFromInt(100_000)), "comisión devuelta = %s", com)
}

func TestProrrateo_UnDiaAntesDelFin_DevolucionMinima(t *testing.T) {
	dev, com := cartera.ProrrateoCancelacion(polizaContado("2024-12-31"))
	require.NotNil(t, dev)

	assert.True(t, dev.LessThan(decimal.NewFromInt(10_000)), "devolución = %s", dev)
	assert.True(t, dev.Equal(decimal.RequireFromString("2732.24")), "devolución = %s", dev)
	assert.True(t, com.Equal(decimal.RequireFromString("273.22")), "comisión = %s", com)
}

func TestProrrateo_MitadDeVigencia_DevuelveMitad(t *testing.T) {
	// 2024-07-02 es el día 183 desde el 1 de enero de 2024 (año bisiesto).
	dev, com := cartera.ProrrateoCancelacion(polizaContado("2024-07-02"))
	require.NotNil(t, dev)

	assert.True(t, dev.Equal(decimal.NewFromInt(500_000)), "devolución = %s", dev)
	assert.True(t, com.Equal(decimal.NewFromInt(50_000)), "comisión = %s", com)
}

func TestProrrateo_CancelacionDespuesDelFin_SeLimitaACero(t *testing.T) {
	dev, com := cartera.ProrrateoCancelacion(polizaContado("2025-03-01"))
	require.NotNil(t, dev)

	assert.True(t, dev.IsZero(), "devolución = %s", dev)
	assert.True(t, com.IsZero(), "comisión = %s", com)
}

func TestProrrateo_ResultadoRedondeadoADosDecimales(t *testing.T) {
	dev, com := cartera.ProrrateoCancelacion(polizaContado("2024-02-15"))
	require.NotNil(t, dev)

	assert.LessOrEqual(t, -dev.Exponent(), int32(2))
	assert.LessOrEqual(t, -com.Exponent(), int32(2))
}

func TestProrrateo_NoAplicaAPolizaMensual(t *testing.T) {
	p := polizaContado("2024-06-01")
	p.ModoPago = entity.ModoPagoMensual

	dev, com := cartera.ProrrateoCancelacion(p)
	assert.Nil(t, dev)
	assert.Nil(t, com)
}

func TestProrrateo_NoAplicaSinFechaCancelacion(t *testing.T) {
	dev, com := cartera.ProrrateoCancelacion(polizaContado(""))
	assert.Nil(t, dev)
	assert.Nil(t, com)
}

func TestProrrateo_VigenciaNula_RetornaCeros(t *testing.T) {
	p := polizaContado("2024-01-01")
	p.FechaFin = p.FechaInicio

	dev, com := cartera.ProrrateoCancelacion(p)
	require.NotNil(t, dev)
	require.NotNil(t, com)
	assert.True(t, dev.IsZero())
	assert.True(t, com.IsZero())
}
