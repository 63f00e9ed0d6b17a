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

// CompanyRepository implementación GORM del puerto repository.CompanyRepository.
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository construye el repositorio.
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

var _ repository.CompanyRepository = (*CompanyRepository)(nil)

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	m := toCompanyModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("sqlite: crear empresa: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var m companyModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener empresa: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	m := toCompanyModel(c)
	res := r.db.WithContext(ctx).Model(&companyModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":       m.Name,
		"cnpj":       m.TaxID,
		"region":     m.Region,
		"contact":    m.Contact,
		"phone":      m.Phone,
		"email":      m.Email,
		"active":     m.Active,
		"updated_at": m.UpdatedAt,
	})
	if res.Error != nil {
		return fmt.Errorf("sqlite: actualizar empresa: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	q := r.db.WithContext(ctx).Order("name")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var rows []companyModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: listar empresas: %w", err)
	}
	out := make([]*entity.Company, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
