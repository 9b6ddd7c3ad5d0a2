package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/catalogos"
	"github.com/assecol/seguros-api/internal/application/dto"
)

// CatalogoHandler tipos de seguro, aseguradoras y vehículos.
type CatalogoHandler struct {
	uc *catalogos.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *catalogos.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// CrearTipoSeguro POST /api/tipos-seguro
func (h *CatalogoHandler) CrearTipoSeguro(c *fiber.Ctx) error {
	var in dto.CreateTipoSeguroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CrearTipoSeguro(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarTiposSeguro GET /api/tipos-seguro
func (h *CatalogoHandler) ListarTiposSeguro(c *fiber.Ctx) error {
	list, err := h.uc.ListarTiposSeguro(c.UserContext())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// CrearCompania POST /api/companias
func (h *CatalogoHandler) CrearCompania(c *fiber.Ctx) error {
	var in dto.CreateCompaniaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CrearCompania(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarCompanias GET /api/companias
func (h *CatalogoHandler) ListarCompanias(c *fiber.Ctx) error {
	list, err := h.uc.ListarCompanias(c.UserContext())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// CrearVehiculo POST /api/vehiculos
func (h *CatalogoHandler) CrearVehiculo(c *fiber.Ctx) error {
	var in dto.CreateVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CrearVehiculo(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarVehiculos GET /api/vehiculos?cliente_id=...
// Un cliente solo ve sus propios vehículos.
func (h *CatalogoHandler) ListarVehiculos(c *fiber.Ctx) error {
	clienteID := c.Query("cliente_id")
	if esCliente(c) {
		clienteID = GetUserID(c)
	}
	if clienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id es requerido"})
	}
	list, err := h.uc.ListarVehiculos(c.UserContext(), clienteID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}
