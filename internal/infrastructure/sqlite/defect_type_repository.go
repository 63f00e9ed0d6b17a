package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// DefectTypeRepository catálogo de tipos de mantenimiento/defecto.
type DefectTypeRepository struct {
	db *gorm.DB
}

// NewDefectTypeRepository construye el repositorio.
func NewDefectTypeRepository(db *gorm.DB) *DefectTypeRepository {
	return &DefectTypeRepository{db: db}
}

var _ repository.DefectTypeRepository = (*DefectTypeRepository)(nil)

func (r *DefectTypeRepository) Create(ctx context.Context, d *entity.DefectType) error {
	m := toDefectTypeModel(d)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("sqlite: crear tipo de defecto: %w", err)
	}
	return nil
}

func (r *DefectTypeRepository) List(ctx context.Context, activeOnly bool) ([]*entity.DefectType, error) {
	q := r.db.WithContext(ctx).Order("codigo")
	if activeOnly {
		q = q.Where("ativo = ?", true)
	}
	var rows []defectTypeModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: listar tipos de defecto: %w", err)
	}
	out := make([]*entity.DefectType, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *DefectTypeRepository) GetByID(ctx context.Context, id string) (*entity.DefectType, error) {
	var m defectTypeModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener tipo de defecto: %w", err)
	}
	return m.toEntity(), nil
}
