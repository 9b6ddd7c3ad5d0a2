package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPolizaNoActiva     = errors.New("la póliza no está activa")
	ErrCuotaYaPagada      = errors.New("la cuota ya está pagada")
	ErrRevisionEnCurso    = errors.New("ya hay una revisión de cartera en curso")
	ErrNoDisponible       = errors.New("servicio no configurado")
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
	ErrSiniestroCerrado   = errors.New("el siniestro está cerrado")
)
