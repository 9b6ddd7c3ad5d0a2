package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/domain"
)

// PolizaHandler maneja las peticiones HTTP de pólizas.
type PolizaHandler struct {
	uc *polizas.PolizaUseCase
}

// NewPolizaHandler construye el handler.
func NewPolizaHandler(uc *polizas.PolizaUseCase) *PolizaHandler {
	return &PolizaHandler{uc: uc}
}

// Create POST /api/polizas
func (h *PolizaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePolizaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/polizas/:id
func (h *PolizaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.obtenerVisible(c, c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/polizas?cliente_id=&estado_cartera=&compania_aseguradora_id=
// Un cliente solo lista sus propias pólizas.
func (h *PolizaHandler) List(c *fiber.Ctx) error {
	var in dto.ListarPolizasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if esCliente(c) {
		in.ClienteID = GetUserID(c)
	}
	out, err := h.uc.Listar(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/polizas/:id
func (h *PolizaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePolizaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Actualizar(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// PreviewCancelacion POST /api/polizas/:id/cancelacion/preview
func (h *PolizaHandler) PreviewCancelacion(c *fiber.Ctx) error {
	var in dto.CancelarPolizaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.PrevisualizarCancelacion(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Cancelar POST /api/polizas/:id/cancelacion
func (h *PolizaHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelarPolizaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Cancelar(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// obtenerVisible lee la póliza respetando que un cliente solo ve las suyas
// (las ajenas responden 404 para no revelar su existencia).
func (h *PolizaHandler) obtenerVisible(c *fiber.Ctx, id string) (*dto.PolizaResponse, error) {
	out, err := h.uc.Obtener(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if esCliente(c) && out.ClienteID != GetUserID(c) {
		return nil, domain.ErrNotFound
	}
	return out, nil
}
