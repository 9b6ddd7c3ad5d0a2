package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatoFecha formato de fechas civiles en la API (YYYY-MM-DD).
const FormatoFecha = "2006-01-02"

// CreatePolizaRequest entrada para crear una póliza.
type CreatePolizaRequest struct {
	NumeroPoliza     string          `json:"numero_poliza" validate:"required,max=50"`
	ClienteID        string          `json:"cliente_id" validate:"required"`
	TipoSeguroID     string          `json:"tipo_seguro_id" validate:"required"`
	CompaniaID       string          `json:"compania_aseguradora_id" validate:"required"`
	VehiculoID       *string         `json:"vehiculo_id"`
	FechaInicio      string          `json:"fecha_inicio" validate:"required"`
	FechaFin         string          `json:"fecha_fin" validate:"required"`
	ValorPrimaSinIVA decimal.Decimal `json:"valor_prima_sin_iva"`
	ModoPago         string          `json:"modo_pago" validate:"required,oneof=CONTADO CREDITO MENSUAL"`
	PlazoMeses       int             `json:"plazo_meses"`
}

// UpdatePolizaRequest entrada para editar una póliza (campos opcionales).
// El modo de pago y el plazo no se editan: el plan de cuotas solo se genera al crear.
type UpdatePolizaRequest struct {
	VehiculoID       *string          `json:"vehiculo_id"`
	FechaInicio      *string          `json:"fecha_inicio"`
	FechaFin         *string          `json:"fecha_fin"`
	ValorPrimaSinIVA *decimal.Decimal `json:"valor_prima_sin_iva"`
	Estado           *string          `json:"estado" validate:"omitempty,oneof=ACTIVA CANCELADA VENCIDA"`
}

// CancelarPolizaRequest entrada para cancelar (o previsualizar la cancelación de) una póliza.
type CancelarPolizaRequest struct {
	FechaCancelacion string `json:"fecha_cancelacion" validate:"required"`
	Motivo           string `json:"motivo"`
}

// PolizaResponse salida de una póliza con sus valores derivados.
type PolizaResponse struct {
	ID                 string           `json:"id"`
	NumeroPoliza       string           `json:"numero_poliza"`
	ClienteID          string           `json:"cliente_id"`
	TipoSeguroID       string           `json:"tipo_seguro_id"`
	TipoSeguro         string           `json:"tipo_seguro"`
	CompaniaID         string           `json:"compania_aseguradora_id"`
	Compania           string           `json:"compania_aseguradora"`
	VehiculoID         *string          `json:"vehiculo_id,omitempty"`
	FechaInicio        string           `json:"fecha_inicio"`
	FechaFin           string           `json:"fecha_fin"`
	ValorPrimaSinIVA   decimal.Decimal  `json:"valor_prima_sin_iva"`
	PorcentajeIVA      decimal.Decimal  `json:"porcentaje_iva"`
	ValorIVA           decimal.Decimal  `json:"valor_iva"`
	ValorTotalAPagar   decimal.Decimal  `json:"valor_total_a_pagar"`
	ComisionPorcentaje decimal.Decimal  `json:"comision_porcentaje"`
	ValorComision      decimal.Decimal  `json:"valor_comision"`
	ModoPago           string           `json:"modo_pago"`
	PlazoMeses         int              `json:"plazo_meses"`
	Estado             string           `json:"estado"`
	EstadoCartera      string           `json:"estado_cartera"`
	FechaCancelacion   *string          `json:"fecha_cancelacion,omitempty"`
	MotivoCancelacion  string           `json:"motivo_cancelacion,omitempty"`
	MontoDevolucion    *decimal.Decimal `json:"monto_devolucion,omitempty"`
	ComisionDevuelta   *decimal.Decimal `json:"comision_devuelta,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ProrrateoResponse resultado de la previsualización de una cancelación.
// Aplica=false cuando la póliza no es de contado.
type ProrrateoResponse struct {
	NumeroPoliza     string           `json:"numero_poliza"`
	FechaCancelacion string           `json:"fecha_cancelacion"`
	Aplica           bool             `json:"aplica"`
	MontoDevolucion  *decimal.Decimal `json:"monto_devolucion,omitempty"`
	ComisionDevuelta *decimal.Decimal `json:"comision_devuelta,omitempty"`
}

// ListarPolizasRequest filtros del listado de pólizas (query string).
type ListarPolizasRequest struct {
	ClienteID     string `query:"cliente_id"`
	EstadoCartera string `query:"estado_cartera"`
	CompaniaID    string `query:"compania_aseguradora_id"`
}

// ListaPolizasResponse pólizas filtradas con los totales de cartera sobre el mismo conjunto.
type ListaPolizasResponse struct {
	Polizas         []*PolizaResponse `json:"polizas"`
	Total           int               `json:"total"`
	TotalVentas     decimal.Decimal   `json:"total_ventas"`
	TotalComisiones decimal.Decimal   `json:"total_comisiones"`
	PolizasEnMora   int               `json:"polizas_en_mora"`
}
