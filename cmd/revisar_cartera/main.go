// revisar_cartera ejecuta una sola vez la revisión de cartera (marca en mora las cuotas
// vencidas y recalcula el estado de cartera de cada póliza mensual activa).
//
// Uso: go run ./cmd/revisar_cartera [-fecha 2025-03-15]
// Sin -fecha usa el día actual en CARTERA_TIMEZONE.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/assecol/seguros-api/internal/application/cartera"
	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/infrastructure/postgres"
	"github.com/assecol/seguros-api/pkg/config"
	"github.com/assecol/seguros-api/pkg/logger"
)

func main() {
	fecha := flag.String("fecha", "", "fecha de corte YYYY-MM-DD (por defecto hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	hoy := time.Now().In(cfg.Cartera.Location())
	if *fecha != "" {
		hoy, err = time.Parse(dto.FormatoFecha, *fecha)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fecha inválida %q: use YYYY-MM-DD\n", *fecha)
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repos := postgres.Repos(pool)
	uc := cartera.NewRevisionUseCase(postgres.NewTxRunner(pool), repos.Polizas, log.Component("revision_cartera"))
	res, err := uc.Revisar(ctx, hoy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Revisión de cartera: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Revisión de cartera al %s\n", res.Fecha.Format(dto.FormatoFecha))
	fmt.Printf("  Pólizas revisadas:        %d\n", res.PolizasRevisadas)
	fmt.Printf("  Cuotas marcadas en mora:  %d\n", res.CuotasMarcadasMora)
	fmt.Printf("  Pólizas pasadas a mora:   %d\n", res.PolizasMarcadasMora)
	fmt.Printf("  Pólizas pasadas al día:   %d\n", res.PolizasMarcadasDia)
	fmt.Printf("  Errores:                  %d\n", res.Errores)
	if res.Errores > 0 {
		os.Exit(3)
	}
}
