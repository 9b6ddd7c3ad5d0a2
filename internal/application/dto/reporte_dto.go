package dto

import "github.com/shopspring/decimal"

// ResumenComisionesResponse totales de comisión y conteos de pólizas en un rango de fechas.
type ResumenComisionesResponse struct {
	Desde             string                     `json:"desde"`
	Hasta             string                     `json:"hasta"`
	ComisionPendiente decimal.Decimal            `json:"comision_pendiente"`
	ComisionLiquidada decimal.Decimal            `json:"comision_liquidada"`
	ComisionTotal     decimal.Decimal            `json:"comision_total"`
	PolizasNuevas     int                        `json:"polizas_nuevas"`
	PolizasEnMora     int                        `json:"polizas_en_mora"`
	PorCompania       []ComisionCompaniaResponse `json:"por_compania"`
}

// ComisionCompaniaResponse comisiones de una aseguradora dentro del rango.
type ComisionCompaniaResponse struct {
	CompaniaID string          `json:"compania_aseguradora_id"`
	Compania   string          `json:"compania_aseguradora"`
	Pendiente  decimal.Decimal `json:"pendiente"`
	Liquidada  decimal.Decimal `json:"liquidada"`
	Total      decimal.Decimal `json:"total"`
}

// TableroResponse indicadores del panel de inicio y alertas de vencimiento.
type TableroResponse struct {
	Fecha               string              `json:"fecha"`
	TotalClientes       int                 `json:"total_clientes"`
	PolizasActivas      int                 `json:"polizas_activas"`
	PolizasPorVencer    int                 `json:"polizas_por_vencer"`
	ListaPolizasAVencer []PolizaAVencerItem `json:"lista_polizas_a_vencer"`
	ListaSOATsAVencer   []SOATAVencerItem   `json:"lista_soats_a_vencer"`
}

// PolizaAVencerItem póliza ACTIVA con fecha fin dentro de la ventana del tablero.
type PolizaAVencerItem struct {
	PolizaID      string `json:"poliza_id"`
	NumeroPoliza  string `json:"numero_poliza"`
	TipoSeguro    string `json:"tipo_seguro"`
	ClienteNombre string `json:"cliente_nombre"`
	FechaFin      string `json:"fecha_fin"`
}

// SOATAVencerItem vehículo con recordatorio SOAT dentro de la ventana del tablero.
type SOATAVencerItem struct {
	VehiculoID        string `json:"vehiculo_id"`
	ClienteID         string `json:"cliente_id"`
	Placa             string `json:"placa"`
	FechaRecordatorio string `json:"fecha_recordatorio"`
}
