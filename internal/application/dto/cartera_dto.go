package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarPagoCuotaRequest entrada para registrar el pago de una cuota.
// FechaPago vacía usa la fecha del día.
type RegistrarPagoCuotaRequest struct {
	FechaPago string `json:"fecha_pago"`
	Notas     string `json:"notas"`
}

// CambiarEstadoComisionRequest entrada para liquidar (o revertir) una comisión.
type CambiarEstadoComisionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDIENTE LIQUIDADA"`
}

// CuotaResponse salida de una cuota.
type CuotaResponse struct {
	ID               string          `json:"id"`
	NumeroCuota      int             `json:"numero_cuota"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	MontoCuota       decimal.Decimal `json:"monto_cuota"`
	Estado           string          `json:"estado"`
}

// PagoResponse salida de un pago o registro de comisión.
type PagoResponse struct {
	ID             string          `json:"id"`
	PolizaID       string          `json:"poliza_id"`
	CuotaID        *string         `json:"cuota_id,omitempty"`
	FechaPago      string          `json:"fecha_pago"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	EstadoComision string          `json:"estado_comision"`
	Notas          string          `json:"notas"`
	Comprobante    string          `json:"comprobante,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ResumenCartera conteos y saldo del plan de cuotas de una póliza.
type ResumenCartera struct {
	TotalCuotas    int             `json:"total_cuotas"`
	Pagadas        int             `json:"pagadas"`
	Pendientes     int             `json:"pendientes"`
	EnMora         int             `json:"en_mora"`
	TotalPagado    decimal.Decimal `json:"total_pagado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
}

// DetalleCarteraResponse póliza con sus cuotas y pagos.
type DetalleCarteraResponse struct {
	Poliza  PolizaResponse  `json:"poliza"`
	Cuotas  []CuotaResponse `json:"cuotas"`
	Pagos   []PagoResponse  `json:"pagos"`
	Resumen ResumenCartera  `json:"resumen"`
}

// RevisionResponse resultado de una revisión de cartera.
type RevisionResponse struct {
	Fecha               string `json:"fecha"`
	PolizasRevisadas    int    `json:"polizas_revisadas"`
	CuotasMarcadasMora  int64  `json:"cuotas_marcadas_mora"`
	PolizasMarcadasMora int    `json:"polizas_marcadas_mora"`
	PolizasMarcadasDia  int    `json:"polizas_marcadas_al_dia"`
	Errores             int    `json:"errores"`
}
