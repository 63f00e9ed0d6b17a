package repository

import (
	"context"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// List devuelve todas las empresas si limit <= 0.
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
