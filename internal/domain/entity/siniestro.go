package entity

import (
	"strings"
	"time"
)

// Estados del siniestro.
const (
	EstadoSiniestroNuevo               = "NUEVO"
	EstadoSiniestroEnProceso           = "EN_PROCESO"
	EstadoSiniestroPendienteDocumentos = "PENDIENTE_DOCUMENTOS"
	EstadoSiniestroCerradoAFavor       = "CERRADO_A_FAVOR"
	EstadoSiniestroCerradoEnContra     = "CERRADO_EN_CONTRA"
)

// Clases de adjunto.
const (
	AdjuntoDocumento = "DOCUMENTO"
	AdjuntoFoto      = "FOTO"
)

// transicionesSiniestro estados alcanzables desde cada estado. Los cerrados no tienen salida.
var transicionesSiniestro = map[string][]string{
	EstadoSiniestroNuevo: {
		EstadoSiniestroEnProceso, EstadoSiniestroPendienteDocumentos,
	},
	EstadoSiniestroEnProceso: {
		EstadoSiniestroPendienteDocumentos, EstadoSiniestroCerradoAFavor, EstadoSiniestroCerradoEnContra,
	},
	EstadoSiniestroPendienteDocumentos: {
		EstadoSiniestroEnProceso, EstadoSiniestroCerradoAFavor, EstadoSiniestroCerradoEnContra,
	},
	EstadoSiniestroCerradoAFavor:   nil,
	EstadoSiniestroCerradoEnContra: nil,
}

// EstadoSiniestroValido indica si el valor es uno de los estados conocidos.
func EstadoSiniestroValido(estado string) bool {
	_, ok := transicionesSiniestro[estado]
	return ok
}

// TipoSiniestro categoría principal (Responsabilidad Civil, Daños Propios...).
type TipoSiniestro struct {
	ID       string
	Nombre   string
	Subtipos []*SubtipoSiniestro
}

// SubtipoSiniestro opción concreta dentro de un tipo (Solo Daños, Pérdida Parcial Hurto...).
type SubtipoSiniestro struct {
	ID         string
	TipoID     string
	TipoNombre string
	Nombre     string
}

// Siniestro reclamación sobre una póliza. ClienteID y NumeroPoliza se cargan de la póliza.
type Siniestro struct {
	ID              string
	PolizaID        string
	NumeroPoliza    string
	ClienteID       string
	NumeroSiniestro string
	FechaSiniestro  time.Time
	Descripcion     string
	Estado          string
	Subtipos        []*SubtipoSiniestro
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Cerrado indica si el siniestro terminó (a favor o en contra).
func (s *Siniestro) Cerrado() bool {
	return s.Estado == EstadoSiniestroCerradoAFavor || s.Estado == EstadoSiniestroCerradoEnContra
}

// PuedePasarA indica si la transición desde el estado actual está permitida.
func (s *Siniestro) PuedePasarA(destino string) bool {
	for _, e := range transicionesSiniestro[s.Estado] {
		if e == destino {
			return true
		}
	}
	return false
}

// AdjuntoSiniestro documento o foto guardado en el almacenamiento de objetos.
type AdjuntoSiniestro struct {
	ID            string
	SiniestroID   string
	Clase         string
	Key           string
	NombreArchivo string
	ContentType   string
	Descripcion   string
	FechaSubida   time.Time
}

// CarpetaAdjunto carpeta del objeto según la clase: documentos o fotos.
func CarpetaAdjunto(clase string) string {
	if clase == AdjuntoFoto {
		return "fotos"
	}
	return "documentos"
}

// EsImagen indica si el content type corresponde a una imagen.
func EsImagen(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
