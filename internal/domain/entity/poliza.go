package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modalidades de pago.
const (
	ModoPagoContado = "CONTADO"
	ModoPagoCredito = "CREDITO"
	ModoPagoMensual = "MENSUAL"
)

// Estados de la póliza.
const (
	EstadoPolizaActiva    = "ACTIVA"
	EstadoPolizaCancelada = "CANCELADA"
	EstadoPolizaVencida   = "VENCIDA"
)

// Estados de cartera (agregado de mora de la póliza).
const (
	EstadoCarteraAlDia        = "AL_DIA"
	EstadoCarteraEnMora       = "EN_MORA"
	EstadoCarteraPagoCompleto = "PAGO_COMPLETO"
)

var cien = decimal.NewFromInt(100)

// Poliza representa un contrato de seguro intermediado por el corredor.
// PorcentajeIVA y ComisionPorcentaje vienen del TipoSeguro y se cargan junto con la póliza.
type Poliza struct {
	ID                 string
	NumeroPoliza       string
	ClienteID          string
	TipoSeguroID       string
	TipoSeguroNombre   string
	CompaniaID         string
	CompaniaNombre     string
	VehiculoID         *string
	FechaInicio        time.Time
	FechaFin           time.Time
	ValorPrimaSinIVA   decimal.Decimal
	PorcentajeIVA      decimal.Decimal
	ComisionPorcentaje decimal.Decimal
	ModoPago           string
	PlazoMeses         int
	Estado             string
	EstadoCartera      string
	FechaCancelacion   *time.Time
	MotivoCancelacion  string
	MontoDevolucion    *decimal.Decimal // solo al cancelar
	ComisionDevuelta   *decimal.Decimal // solo al cancelar
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValorIVA = prima × %IVA / 100.
func (p *Poliza) ValorIVA() decimal.Decimal {
	return p.ValorPrimaSinIVA.Mul(p.PorcentajeIVA).Div(cien)
}

// ValorTotalAPagar = prima + IVA.
func (p *Poliza) ValorTotalAPagar() decimal.Decimal {
	return p.ValorPrimaSinIVA.Add(p.ValorIVA())
}

// ValorComision = prima (sin IVA) × %comisión / 100.
func (p *Poliza) ValorComision() decimal.Decimal {
	return p.ValorPrimaSinIVA.Mul(p.ComisionPorcentaje).Div(cien)
}

// EsActiva indica si la póliza está vigente.
func (p *Poliza) EsActiva() bool { return p.Estado == EstadoPolizaActiva }

// PagaEnUnSoloRegistro indica modos con un único registro de comisión (contado o crédito).
func (p *Poliza) PagaEnUnSoloRegistro() bool {
	return p.ModoPago == ModoPagoContado || p.ModoPago == ModoPagoCredito
}

// ModoPagoValido valida el enum de modalidad.
func ModoPagoValido(m string) bool {
	switch m {
	case ModoPagoContado, ModoPagoCredito, ModoPagoMensual:
		return true
	}
	return false
}

// EstadoPolizaValido valida el enum de estado de póliza.
func EstadoPolizaValido(e string) bool {
	switch e {
	case EstadoPolizaActiva, EstadoPolizaCancelada, EstadoPolizaVencida:
		return true
	}
	return false
}

// EstadoCarteraValido valida el enum de cartera.
func EstadoCarteraValido(e string) bool {
	return e == EstadoCarteraAlDia || e == EstadoCarteraEnMora || e == EstadoCarteraPagoCompleto
}
