package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuota.
const (
	EstadoCuotaPendiente = "PENDIENTE"
	EstadoCuotaPagada    = "PAGADA"
	EstadoCuotaEnMora    = "EN_MORA"
)

// Cuota es una obligación mensual de pago de una póliza MENSUAL.
// (PolizaID, NumeroCuota) es único.
type Cuota struct {
	ID               string
	PolizaID         string
	NumeroCuota      int
	FechaVencimiento time.Time
	MontoCuota       decimal.Decimal
	Estado           string
}
