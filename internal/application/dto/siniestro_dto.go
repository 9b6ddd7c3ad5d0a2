package dto

import "time"

// CreateTipoSiniestroRequest entrada para crear un tipo de siniestro.
type CreateTipoSiniestroRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// CreateSubtipoSiniestroRequest entrada para agregar un subtipo a un tipo.
type CreateSubtipoSiniestroRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// SubtipoSiniestroResponse salida de un subtipo.
type SubtipoSiniestroResponse struct {
	ID     string `json:"id"`
	TipoID string `json:"tipo_id"`
	Tipo   string `json:"tipo"`
	Nombre string `json:"nombre"`
}

// TipoSiniestroResponse salida de un tipo con sus subtipos.
type TipoSiniestroResponse struct {
	ID       string                     `json:"id"`
	Nombre   string                     `json:"nombre"`
	Subtipos []SubtipoSiniestroResponse `json:"subtipos"`
}

// CreateSiniestroRequest entrada para registrar un siniestro sobre una póliza.
type CreateSiniestroRequest struct {
	PolizaID        string   `json:"poliza_id" validate:"required"`
	NumeroSiniestro string   `json:"numero_siniestro" validate:"required,max=100"`
	FechaSiniestro  string   `json:"fecha_siniestro" validate:"required"`
	Descripcion     string   `json:"descripcion" validate:"required"`
	SubtipoIDs      []string `json:"subtipo_ids" validate:"required,min=1"`
}

// CambiarEstadoSiniestroRequest entrada para mover el siniestro de estado.
type CambiarEstadoSiniestroRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ListarSiniestrosRequest filtros del listado de siniestros (query string).
type ListarSiniestrosRequest struct {
	PolizaID  string `query:"poliza_id"`
	ClienteID string `query:"cliente_id"`
	Estado    string `query:"estado"`
}

// AdjuntoSiniestroResponse salida de un documento o foto.
type AdjuntoSiniestroResponse struct {
	ID            string    `json:"id"`
	Clase         string    `json:"clase"`
	Key           string    `json:"key"`
	NombreArchivo string    `json:"nombre_archivo"`
	ContentType   string    `json:"content_type"`
	Descripcion   string    `json:"descripcion,omitempty"`
	FechaSubida   time.Time `json:"fecha_subida"`
}

// SiniestroResponse salida de un siniestro. Adjuntos solo viene en el detalle.
type SiniestroResponse struct {
	ID              string                     `json:"id"`
	PolizaID        string                     `json:"poliza_id"`
	NumeroPoliza    string                     `json:"numero_poliza"`
	ClienteID       string                     `json:"cliente_id"`
	NumeroSiniestro string                     `json:"numero_siniestro"`
	FechaSiniestro  string                     `json:"fecha_siniestro"`
	Descripcion     string                     `json:"descripcion"`
	Estado          string                     `json:"estado"`
	Subtipos        []SubtipoSiniestroResponse `json:"subtipos"`
	Adjuntos        []AdjuntoSiniestroResponse `json:"adjuntos,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}
