package repository

import (
	"context"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// TipoSeguroRepository define el puerto de persistencia para TipoSeguro.
type TipoSeguroRepository interface {
	Create(ctx context.Context, t *entity.TipoSeguro) error
	GetByID(ctx context.Context, id string) (*entity.TipoSeguro, error)
	List(ctx context.Context) ([]*entity.TipoSeguro, error)
}
