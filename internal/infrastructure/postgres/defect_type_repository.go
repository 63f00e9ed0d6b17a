package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

var _ repository.DefectTypeRepository = (*DefectTypeRepo)(nil)

const defectTypeColumns = `id, codigo, COALESCE(descricao, ''), categoria, ativo, created_at`

// DefectTypeRepo catálogo de tipos de mantenimiento/defecto sobre PostgreSQL.
type DefectTypeRepo struct {
	q Querier
}

// NewDefectTypeRepository construye el adaptador.
func NewDefectTypeRepository(q Querier) *DefectTypeRepo {
	return &DefectTypeRepo{q: q}
}

// Create persiste una clasificación.
func (r *DefectTypeRepo) Create(ctx context.Context, d *entity.DefectType) error {
	query := `
		INSERT INTO tipos_manutencao (id, codigo, descricao, categoria, ativo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Code, d.Description, string(d.Category), d.Active, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert defect type: %w", err)
	}
	return nil
}

// List devuelve el catálogo ordenado por código.
func (r *DefectTypeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.DefectType, error) {
	b := psql.Select(defectTypeColumns).From("tipos_manutencao").OrderBy("codigo")
	if activeOnly {
		b = b.Where("ativo = true")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build defect type list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list defect types: %w", err)
	}
	defer rows.Close()

	var list []*entity.DefectType
	for rows.Next() {
		var (
			d        entity.DefectType
			category string
		)
		if err := rows.Scan(&d.ID, &d.Code, &d.Description, &category, &d.Active, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan defect type: %w", err)
		}
		d.Category = entity.DefectCategory(category)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetByID obtiene una clasificación por ID.
func (r *DefectTypeRepo) GetByID(ctx context.Context, id string) (*entity.DefectType, error) {
	query := `SELECT ` + defectTypeColumns + ` FROM tipos_manutencao WHERE id = $1`
	var (
		d        entity.DefectType
		category string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Code, &d.Description, &category, &d.Active, &d.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get defect type: %w", err)
	}
	d.Category = entity.DefectCategory(category)
	return &d, nil
}
