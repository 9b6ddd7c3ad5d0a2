package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAsesor  = "asesor"
	RoleCliente = "cliente"
)

// User representa un usuario del sistema: personal de la agencia o cliente titular de pólizas.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleValido valida el enum de roles.
func RoleValido(r string) bool {
	return r == RoleAdmin || r == RoleAsesor || r == RoleCliente
}
