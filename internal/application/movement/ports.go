package movement

import (
	"context"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Es la unidad de trabajo del registro de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}

// CompanyLookup directorio de empresas (solo lectura).
type CompanyLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// DefectLookup catálogo de clasificaciones (solo lectura).
type DefectLookup interface {
	GetByID(ctx context.Context, id string) (*entity.DefectType, error)
}
