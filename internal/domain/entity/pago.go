package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de liquidación de la comisión.
const (
	EstadoComisionPendiente = "PENDIENTE"
	EstadoComisionLiquidada = "LIQUIDADA"
)

// Notas de los registros generados por el sistema (distinguen de los pagos manuales).
const (
	NotaComisionAutomatica     = "Registro de comisión generado automáticamente al crear la póliza."
	NotaComisionActualizacion  = "Registro de comisión generado al actualizar póliza."
	NotaPagoCuotaAutomaticaFmt = "Pago registrado automáticamente para la cuota #%d."
)

// Pago registra dinero pagado sobre una póliza o la comisión por cobrar del corredor.
// CuotaID nil: registro de comisión de una póliza de contado/crédito (máximo uno por póliza).
type Pago struct {
	ID             string
	PolizaID       string
	CuotaID        *string
	FechaPago      time.Time
	MontoPagado    decimal.Decimal
	EstadoComision string
	Notas          string
	ComprobanteKey string // llave del objeto en el almacenamiento de comprobantes
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EsRegistroComision indica si el pago es el registro de comisión de la póliza.
func (p *Pago) EsRegistroComision() bool { return p.CuotaID == nil }

// EstadoComisionValido valida el enum de liquidación.
func EstadoComisionValido(e string) bool {
	return e == EstadoComisionPendiente || e == EstadoComisionLiquidada
}
