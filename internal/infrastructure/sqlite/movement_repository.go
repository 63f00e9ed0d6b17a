package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// MovementRepository registro append-only de movimientos.
type MovementRepository struct {
	db *gorm.DB
}

// NewMovementRepository construye el repositorio. db puede ser una transacción.
func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Create(ctx context.Context, mv *entity.Movement) error {
	m := toMovementModel(mv)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("sqlite: insertar movimiento: %w", err)
	}
	return nil
}

func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var m movementModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener movimiento: %w", err)
	}
	return m.toEntity(), nil
}

func (r *MovementRepository) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	q := r.db.WithContext(ctx).Model(&movementModel{})
	if f.EquipmentID != "" {
		q = q.Where("equipamento_id = ?", f.EquipmentID)
	}
	if f.CompanyID != "" {
		q = q.Where("empresa_origem_id = ? OR empresa_destino_id = ?", f.CompanyID, f.CompanyID)
	}
	if f.Type != "" {
		q = q.Where("tipo_movimentacao = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("data_movimentacao >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("data_movimentacao <= ?", f.To.UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("sqlite: contar movimientos: %w", err)
	}
	q = q.Order("data_movimentacao DESC").Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []movementModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("sqlite: listar movimientos: %w", err)
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, int(total), nil
}
