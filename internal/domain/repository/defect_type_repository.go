package repository

import (
	"context"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// DefectTypeRepository catálogo de tipos de defecto/mantenimiento (solo lectura para el motor).
type DefectTypeRepository interface {
	Create(ctx context.Context, d *entity.DefectType) error
	List(ctx context.Context, activeOnly bool) ([]*entity.DefectType, error)
	GetByID(ctx context.Context, id string) (*entity.DefectType, error)
}
