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

// UserRepository implementación GORM del puerto repository.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("sqlite: crear usuario: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener usuario: %w", err)
	}
	return m.toEntity(), nil
}

func (r *UserRepository) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var rows []userModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: listar usuarios: %w", err)
	}
	out := make([]*entity.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
