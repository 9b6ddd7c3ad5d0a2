package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/internal/application/reportes"
)

// TareasHandler disparo manual de las tareas diarias y reportes (admin).
type TareasHandler struct {
	revision      *cartera.RevisionUseCase
	recordatorios *recordatorios.RecordatorioUseCase
	reportes      *reportes.ReporteUseCase
	ahora         func() time.Time
}

// NewTareasHandler construye el handler. ahora define el "hoy" de la agencia.
func NewTareasHandler(rev *cartera.RevisionUseCase, rec *recordatorios.RecordatorioUseCase, rep *reportes.ReporteUseCase, ahora func() time.Time) *TareasHandler {
	if ahora == nil {
		ahora = time.Now
	}
	return &TareasHandler{revision: rev, recordatorios: rec, reportes: rep, ahora: ahora}
}

// RevisarCartera POST /api/cartera/revision
func (h *TareasHandler) RevisarCartera(c *fiber.Ctx) error {
	res, err := h.revision.Revisar(c.UserContext(), h.ahora())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(cartera.ToRevisionResponse(res))
}

// EnviarRecordatorios POST /api/recordatorios/envio
func (h *TareasHandler) EnviarRecordatorios(c *fiber.Ctx) error {
	if h.recordatorios == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "correo no configurado"})
	}
	res, err := h.recordatorios.EnviarRecordatorios(c.UserContext(), h.ahora())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fiber.Map{
		"encontradas": res.Encontradas,
		"enviadas":    res.Enviadas,
		"errores":     res.Errores,
	})
}

// ResumenComisiones GET /api/reportes/comisiones?desde=2025-01-01&hasta=2025-01-31
// Sin fechas toma el mes en curso.
func (h *TareasHandler) ResumenComisiones(c *fiber.Ctx) error {
	hoy := h.ahora()
	desde := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	var err error
	if s := c.Query("desde"); s != "" {
		if desde, err = time.Parse(dto.FormatoFecha, s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe tener formato YYYY-MM-DD"})
		}
	}
	if s := c.Query("hasta"); s != "" {
		if hasta, err = time.Parse(dto.FormatoFecha, s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe tener formato YYYY-MM-DD"})
		}
	}
	out, err := h.reportes.ResumenComisiones(c.UserContext(), desde, hasta)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Tablero GET /api/reportes/tablero
func (h *TareasHandler) Tablero(c *fiber.Ctx) error {
	out, err := h.reportes.Tablero(c.UserContext(), h.ahora())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
