package ports

import (
	"context"

	"github.com/assecol/seguros-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Polizas     repository.PolizaRepository
	Cuotas      repository.CuotaRepository
	Pagos       repository.PagoRepository
	Vehiculos   repository.VehiculoRepository
	TiposSeguro repository.TipoSeguroRepository
	Companias   repository.CompaniaRepository
	Siniestros  repository.SiniestroRepository
}

// Savepoint ejecuta fn dentro de un SAVEPOINT de la transacción en curso.
// Si fn falla se revierte solo lo hecho en fn y la transacción externa sigue utilizable.
type Savepoint func(ctx context.Context, fn func(repos Repos) error) error

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback si no.
// Garantiza que una póliza y sus cuotas/pagos derivados se guarden de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos, savepoint Savepoint) error) error
}
