package cartera

import (
	"context"
	"io"

	"github.com/assecol/seguros-api/internal/application/dto"
)

// ComprobanteStore almacenamiento de comprobantes de pago (objeto binario + llave).
type ComprobanteStore interface {
	// Guardar sube el objeto y devuelve la llave con la que quedó almacenado.
	Guardar(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// EstadoCuentaPDFGenerator genera el estado de cuenta de una póliza en PDF.
type EstadoCuentaPDFGenerator interface {
	GenerarEstadoCuenta(ctx context.Context, detalle *dto.DetalleCarteraResponse) ([]byte, error)
}
