package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/assecol/seguros-api/internal/application/auth"
	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/catalogos"
	"github.com/assecol/seguros-api/internal/application/polizas"
	"github.com/assecol/seguros-api/internal/application/recordatorios"
	"github.com/assecol/seguros-api/internal/application/reportes"
	"github.com/assecol/seguros-api/internal/application/siniestros"
	infmail "github.com/assecol/seguros-api/internal/infrastructure/mail"
	infpdf "github.com/assecol/seguros-api/internal/infrastructure/pdf"
	"github.com/assecol/seguros-api/internal/infrastructure/postgres"
	"github.com/assecol/seguros-api/internal/infrastructure/storage"
	httpRouter "github.com/assecol/seguros-api/internal/interfaces/http"
	"github.com/assecol/seguros-api/internal/interfaces/scheduler"
	"github.com/assecol/seguros-api/pkg/config"
	"github.com/assecol/seguros-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	repos := postgres.Repos(pool)
	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)

	// Almacenamiento de comprobantes y adjuntos de siniestros (opcional)
	var comprobantes cartera.ComprobanteStore
	var adjuntos siniestros.ArchivoStore
	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinioStore(ctx, cfg.MinIO, log.Component("storage"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MinIO")
		}
		comprobantes = store
		adjuntos = store
	} else {
		log.Warn().Msg("MINIO_ENDPOINT vacío: comprobantes de pago y adjuntos de siniestros quedan deshabilitados")
	}

	derivacion := polizas.NewDerivacionService(log.Component("derivacion"))
	polizaUC := polizas.NewPolizaUseCase(txRunner, repos.Polizas, derivacion)
	carteraUC := cartera.NewCarteraUseCase(txRunner, repos, comprobantes, infpdf.NewMarotoPDFGenerator(cfg.App.Name), log.Component("cartera"))
	revisionUC := cartera.NewRevisionUseCase(txRunner, repos.Polizas, log.Component("revision_cartera"))
	reporteUC := reportes.NewReporteUseCase(repos.Pagos, reporteRepo, repos.Polizas, repos.Vehiculos)
	catalogoUC := catalogos.NewCatalogoUseCase(repos.TiposSeguro, repos.Vehiculos, repos.Companias)
	siniestroUC := siniestros.NewSiniestroUseCase(txRunner, repos.Siniestros, postgres.NewTipoSiniestroRepository(pool), adjuntos, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Recordatorios por correo (solo con SMTP configurado)
	var recordatorioUC *recordatorios.RecordatorioUseCase
	if cfg.Mail.Enabled() {
		recordatorioUC = recordatorios.NewRecordatorioUseCase(
			repos.Polizas, infmail.NewSMTPNotifier(cfg.Mail), cfg.Mail.AdminEmail,
			cfg.Cartera.RecordatorioDias, log.Component("recordatorios"),
		)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: los recordatorios de vencimiento quedan deshabilitados")
	}

	loc := cfg.Cartera.Location()
	ahora := func() time.Time { return time.Now().In(loc) }

	var sched *scheduler.Scheduler
	if cfg.Cartera.SchedulerEnabled {
		var recordador scheduler.Recordador
		if recordatorioUC != nil {
			recordador = recordatorioUC
		}
		sched, err = scheduler.New(cfg.Cartera, revisionUC, recordador, log)
		if err != nil {
			log.Fatal().Err(err).Msg("programar tareas")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogoUC:     catalogoUC,
		PolizaUC:       polizaUC,
		CarteraUC:      carteraUC,
		RevisionUC:     revisionUC,
		RecordatorioUC: recordatorioUC,
		ReporteUC:      reporteUC,
		SiniestroUC:    siniestroUC,
		Ahora:          ahora,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
