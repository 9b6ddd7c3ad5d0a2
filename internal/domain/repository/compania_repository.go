package repository

import (
	"context"

	"github.com/assecol/seguros-api/internal/domain/entity"
)

// CompaniaRepository define el puerto de persistencia para CompaniaAseguradora.
type CompaniaRepository interface {
	// Create nombre repetido → domain.ErrDuplicate.
	Create(ctx context.Context, c *entity.CompaniaAseguradora) error
	GetByID(ctx context.Context, id string) (*entity.CompaniaAseguradora, error)
	List(ctx context.Context) ([]*entity.CompaniaAseguradora, error)
}
