package dto

import "github.com/shopspring/decimal"

// CreateTipoSeguroRequest entrada para crear un tipo de seguro.
type CreateTipoSeguroRequest struct {
	Nombre             string          `json:"nombre" validate:"required,max=100"`
	Descripcion        string          `json:"descripcion"`
	ComisionPorcentaje decimal.Decimal `json:"comision_porcentaje"`
	PorcentajeIVA      decimal.Decimal `json:"porcentaje_iva"`
}

// TipoSeguroResponse salida de un tipo de seguro.
type TipoSeguroResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Descripcion        string          `json:"descripcion"`
	ComisionPorcentaje decimal.Decimal `json:"comision_porcentaje"`
	PorcentajeIVA      decimal.Decimal `json:"porcentaje_iva"`
}

// CreateVehiculoRequest entrada para registrar el vehículo de un cliente.
type CreateVehiculoRequest struct {
	ClienteID string `json:"cliente_id" validate:"required"`
	Placa     string `json:"placa" validate:"required,max=10"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	Ano       *int   `json:"ano"`
}

// VehiculoResponse salida de un vehículo.
type VehiculoResponse struct {
	ID                          string  `json:"id"`
	ClienteID                   string  `json:"cliente_id"`
	Placa                       string  `json:"placa"`
	Marca                       string  `json:"marca"`
	Modelo                      string  `json:"modelo"`
	Ano                         *int    `json:"ano,omitempty"`
	SOATVencimientoRecordatorio *string `json:"soat_vencimiento_recordatorio,omitempty"`
}

// CreateCompaniaRequest entrada para registrar una aseguradora.
type CreateCompaniaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// CompaniaResponse salida de una aseguradora.
type CompaniaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}
