package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/dto"
)

// tamanoMaxComprobante límite del archivo de comprobante (10 MiB).
const tamanoMaxComprobante = 10 << 20

// CarteraHandler cuotas, pagos y estado de cuenta de las pólizas.
type CarteraHandler struct {
	uc      *cartera.CarteraUseCase
	polizas *PolizaHandler
}

// NewCarteraHandler construye el handler. polizas se usa para verificar la visibilidad de la póliza.
func NewCarteraHandler(uc *cartera.CarteraUseCase, polizas *PolizaHandler) *CarteraHandler {
	return &CarteraHandler{uc: uc, polizas: polizas}
}

// Detalle GET /api/polizas/:id/cartera
func (h *CarteraHandler) Detalle(c *fiber.Ctx) error {
	if _, err := h.polizas.obtenerVisible(c, c.Params("id")); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.Detalle(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// EstadoCuenta GET /api/polizas/:id/estado-cuenta (application/pdf)
func (h *CarteraHandler) EstadoCuenta(c *fiber.Ctx) error {
	if _, err := h.polizas.obtenerVisible(c, c.Params("id")); err != nil {
		return responderError(c, err)
	}
	pdfBytes, nombre, err := h.uc.EstadoCuentaPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(pdfBytes)
}

// PagarCuota POST /api/cuotas/:id/pago
func (h *CarteraHandler) PagarCuota(c *fiber.Ctx) error {
	var in dto.RegistrarPagoCuotaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return cuerpoInvalido(c)
		}
	}
	out, err := h.uc.RegistrarPagoCuota(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarcarMora POST /api/cuotas/:id/mora
func (h *CarteraHandler) MarcarMora(c *fiber.Ctx) error {
	if err := h.uc.MarcarCuotaEnMora(c.UserContext(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CambiarEstadoComision PATCH /api/pagos/:id/comision
func (h *CarteraHandler) CambiarEstadoComision(c *fiber.Ctx) error {
	var in dto.CambiarEstadoComisionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	in.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
	out, err := h.uc.CambiarEstadoComision(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AdjuntarComprobante POST /api/pagos/:id/comprobante (multipart, campo "archivo")
func (h *CarteraHandler) AdjuntarComprobante(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido"})
	}
	if fh.Size > tamanoMaxComprobante {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el comprobante supera 10 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return responderError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.AdjuntarComprobante(c.UserContext(), c.Params("id"), fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
