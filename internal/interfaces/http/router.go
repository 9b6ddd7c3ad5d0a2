package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/assecol/seguros-api/internal/application/auth"
	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/catalogos"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/internal/application/reportes"
	"github.com/assecol/seguros-api/internal/application/siniestros"
	"github.com/assecol/seguros-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogoUC     *catalogos.CatalogoUseCase
	PolizaUC       *polizas.PolizaUseCase
	CarteraUC      *cartera.CarteraUseCase
	RevisionUC     *cartera.RevisionUseCase
	RecordatorioUC *recordatorios.RecordatorioUseCase // nil si no hay SMTP
	ReporteUC      *reportes.ReporteUseCase
	SiniestroUC    *siniestros.SiniestroUseCase
	Ahora          func() time.Time // "hoy" en la zona horaria de la agencia
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleAsesor)
	todos := RequireRole(entity.RoleAdmin, entity.RoleAsesor, entity.RoleCliente)

	protected.Post("/usuarios", soloAdmin, authHandler.CrearUsuario)

	// Catálogos
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	protected.Get("/tipos-seguro", todos, catalogoHandler.ListarTiposSeguro)
	protected.Post("/tipos-seguro", soloAdmin, catalogoHandler.CrearTipoSeguro)
	protected.Get("/companias", todos, catalogoHandler.ListarCompanias)
	protected.Post("/companias", soloAdmin, catalogoHandler.CrearCompania)
	protected.Get("/vehiculos", todos, catalogoHandler.ListarVehiculos)
	protected.Post("/vehiculos", staff, catalogoHandler.CrearVehiculo)

	// Pólizas
	polizaHandler := NewPolizaHandler(deps.PolizaUC)
	carteraHandler := NewCarteraHandler(deps.CarteraUC, polizaHandler)
	pol := protected.Group("/polizas")
	pol.Get("/", todos, polizaHandler.List)
	pol.Post("/", staff, polizaHandler.Create)
	pol.Get("/:id", todos, polizaHandler.GetByID)
	pol.Put("/:id", staff, polizaHandler.Update)
	pol.Post("/:id/cancelacion/preview", staff, polizaHandler.PreviewCancelacion)
	pol.Post("/:id/cancelacion", staff, polizaHandler.Cancelar)
	pol.Get("/:id/cartera", todos, carteraHandler.Detalle)
	pol.Get("/:id/estado-cuenta", todos, carteraHandler.EstadoCuenta)

	// Cuotas y pagos
	protected.Post("/cuotas/:id/pago", staff, carteraHandler.PagarCuota)
	protected.Post("/cuotas/:id/mora", staff, carteraHandler.MarcarMora)
	protected.Patch("/pagos/:id/comision", soloAdmin, carteraHandler.CambiarEstadoComision)
	protected.Post("/pagos/:id/comprobante", staff, carteraHandler.AdjuntarComprobante)

	// Siniestros
	siniestroHandler := NewSiniestroHandler(deps.SiniestroUC)
	protected.Get("/tipos-siniestro", todos, siniestroHandler.ListarTipos)
	protected.Post("/tipos-siniestro", soloAdmin, siniestroHandler.CrearTipo)
	protected.Post("/tipos-siniestro/:id/subtipos", soloAdmin, siniestroHandler.CrearSubtipo)
	sin := protected.Group("/siniestros")
	sin.Get("/", todos, siniestroHandler.List)
	sin.Post("/", staff, siniestroHandler.Create)
	sin.Get("/:id", todos, siniestroHandler.GetByID)
	sin.Patch("/:id/estado", staff, siniestroHandler.CambiarEstado)
	sin.Post("/:id/documentos", staff, siniestroHandler.AdjuntarDocumento)
	sin.Post("/:id/fotos", staff, siniestroHandler.AdjuntarFoto)

	// Tareas diarias (disparo manual) y reportes
	tareas := NewTareasHandler(deps.RevisionUC, deps.RecordatorioUC, deps.ReporteUC, deps.Ahora)
	protected.Post("/cartera/revision", soloAdmin, tareas.RevisarCartera)
	protected.Post("/recordatorios/envio", soloAdmin, tareas.EnviarRecordatorios)
	protected.Get("/reportes/comisiones", soloAdmin, tareas.ResumenComisiones)
	protected.Get("/reportes/tablero", staff, tareas.Tablero)
}
