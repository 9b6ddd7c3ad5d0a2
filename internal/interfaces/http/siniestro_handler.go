package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/siniestros"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
)

// tamanoMaxAdjunto límite de cada documento o foto del siniestro (10 MiB).
const tamanoMaxAdjunto = 10 << 20

// SiniestroHandler siniestros, sus adjuntos y el catálogo de tipos.
type SiniestroHandler struct {
	uc *siniestros.SiniestroUseCase
}

// NewSiniestroHandler construye el handler.
func NewSiniestroHandler(uc *siniestros.SiniestroUseCase) *SiniestroHandler {
	return &SiniestroHandler{uc: uc}
}

// CrearTipo POST /api/tipos-siniestro
func (h *SiniestroHandler) CrearTipo(c *fiber.Ctx) error {
	var in dto.CreateTipoSiniestroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CrearTipo(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CrearSubtipo POST /api/tipos-siniestro/:id/subtipos
func (h *SiniestroHandler) CrearSubtipo(c *fiber.Ctx) error {
	var in dto.CreateSubtipoSiniestroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CrearSubtipo(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarTipos GET /api/tipos-siniestro
func (h *SiniestroHandler) ListarTipos(c *fiber.Ctx) error {
	list, err := h.uc.ListarTipos(c.UserContext())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/siniestros
func (h *SiniestroHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiniestroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/siniestros?poliza_id=&cliente_id=&estado=
// Un cliente solo lista los siniestros de sus pólizas.
func (h *SiniestroHandler) List(c *fiber.Ctx) error {
	var in dto.ListarSiniestrosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	in.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
	if esCliente(c) {
		in.ClienteID = GetUserID(c)
	}
	list, err := h.uc.Listar(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/siniestros/:id (con adjuntos)
func (h *SiniestroHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.obtenerVisible(c, c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado PATCH /api/siniestros/:id/estado
func (h *SiniestroHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoSiniestroRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AdjuntarDocumento POST /api/siniestros/:id/documentos (multipart, campos "archivo" y "descripcion")
func (h *SiniestroHandler) AdjuntarDocumento(c *fiber.Ctx) error {
	return h.adjuntar(c, entity.AdjuntoDocumento)
}

// AdjuntarFoto POST /api/siniestros/:id/fotos (multipart, campos "archivo" y "descripcion")
func (h *SiniestroHandler) AdjuntarFoto(c *fiber.Ctx) error {
	return h.adjuntar(c, entity.AdjuntoFoto)
}

func (h *SiniestroHandler) adjuntar(c *fiber.Ctx, clase string) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido"})
	}
	if fh.Size > tamanoMaxAdjunto {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera 10 MB"})
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
	out, err := h.uc.AdjuntarArchivo(c.UserContext(), c.Params("id"), clase, fh.Filename,
		fh.Header.Get(fiber.HeaderContentType), c.FormValue("descripcion"), data)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// obtenerVisible lee el siniestro; los de pólizas ajenas responden 404 a un cliente.
func (h *SiniestroHandler) obtenerVisible(c *fiber.Ctx, id string) (*dto.SiniestroResponse, error) {
	out, err := h.uc.Obtener(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if esCliente(c) && out.ClienteID != GetUserID(c) {
		return nil, domain.ErrNotFound
	}
	return out, nil
}
