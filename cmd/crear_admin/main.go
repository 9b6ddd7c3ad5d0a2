// crear_admin registra el primer usuario administrador (el registro público solo crea clientes).
//
// Uso: go run ./cmd/crear_admin <email> <password> [nombre]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/assecol/seguros-api/internal/application/auth"
	"github.com/assecol/seguros-api/internal/application/dto"
	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/internal/domain/entity"
	"github.com/assecol/seguros-api/internal/infrastructure/postgres"
	"github.com/assecol/seguros-api/pkg/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: crear_admin <email> <password> [nombre]")
		os.Exit(2)
	}
	in := dto.RegisterRequest{Email: os.Args[1], Password: os.Args[2], Role: entity.RoleAdmin}
	if len(os.Args) > 3 {
		in.Name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
	u, err := uc.RegistrarUsuario(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Fprintf(os.Stderr, "El email %s ya está registrado\n", in.Email)
		os.Exit(1)
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintln(os.Stderr, "Email requerido y password de al menos 8 caracteres")
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s (%s)\n", u.Email, u.ID)
}
