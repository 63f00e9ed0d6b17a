package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/pkg/textnorm"
)

// EquipmentRepository implementación GORM del puerto repository.EquipmentRepository.
type EquipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository construye el repositorio. db puede ser una transacción.
func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

var _ repository.EquipmentRepository = (*EquipmentRepository)(nil)

func (r *EquipmentRepository) Create(ctx context.Context, e *entity.Equipment) error {
	m := toEquipmentModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("sqlite: crear equipo: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EquipmentRepository) GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error) {
	return r.first(ctx, "numero_serie = ?", serial)
}

func (r *EquipmentRepository) first(ctx context.Context, query string, arg any) (*entity.Equipment, error) {
	var m equipmentModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener equipo: %w", err)
	}
	return m.toEntity(), nil
}

// Update escribe todos los campos mutables, incluidos los valores cero (salida nula, bandera en false).
func (r *EquipmentRepository) Update(ctx context.Context, e *entity.Equipment) error {
	m := toEquipmentModel(e)
	res := r.db.WithContext(ctx).Model(&equipmentModel{}).Where("id = ?", e.ID).Updates(map[string]any{
		"tipo":          m.Type,
		"modelo":        m.Model,
		"empresa_id":    m.CompanyID,
		"data_saida":    m.ExitDate,
		"status":        m.Status,
		"regiao":        m.Region,
		"em_manutencao": m.InMaintenance,
		"updated_at":    m.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("sqlite: actualizar equipo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) List(ctx context.Context, f repository.EquipmentFilter) ([]*entity.Equipment, int, error) {
	q := r.db.WithContext(ctx).Model(&equipmentModel{})
	if f.CompanyID != "" {
		q = q.Where("empresa_id = ?", f.CompanyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("LOWER(tipo) = ?", strings.ToLower(f.Type))
	}
	if f.Search != "" {
		q = q.Where(`LOWER(numero_serie) LIKE ? ESCAPE '\'`, textnorm.ContainsPattern(strings.ToLower(f.Search)))
	}
	if f.Out != nil {
		if *f.Out {
			q = q.Where("data_saida IS NOT NULL")
		} else {
			q = q.Where("data_saida IS NULL")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("sqlite: contar equipos: %w", err)
	}
	q = q.Order("numero_serie")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []equipmentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("sqlite: listar equipos: %w", err)
	}
	out := make([]*entity.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, int(total), nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
