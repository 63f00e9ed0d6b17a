package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
)

// DefectCatalog lectura/escritura del catálogo (normalmente la versión cacheada).
type DefectCatalog interface {
	List(ctx context.Context, activeOnly bool) ([]*entity.DefectType, error)
	GetByID(ctx context.Context, id string) (*entity.DefectType, error)
	Create(ctx context.Context, d *entity.DefectType) error
}

// DefectTypeUseCase catálogo de defectos y tipos de mantenimiento.
type DefectTypeUseCase struct {
	catalog DefectCatalog
}

// NewDefectTypeUseCase construye el caso de uso.
func NewDefectTypeUseCase(catalog DefectCatalog) *DefectTypeUseCase {
	return &DefectTypeUseCase{catalog: catalog}
}

// List devuelve el catálogo ordenado por código y agrupado por categoría.
func (uc *DefectTypeUseCase) List(ctx context.Context, activeOnly bool) (*dto.DefectTypeListResponse, error) {
	list, err := uc.catalog.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	sorted := append([]*entity.DefectType(nil), list...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	out := &dto.DefectTypeListResponse{
		Items:      make([]dto.DefectTypeResponse, 0, len(sorted)),
		ByCategory: map[string][]dto.DefectTypeResponse{},
	}
	for _, d := range sorted {
		r := toDefectTypeResponse(d)
		out.Items = append(out.Items, r)
		out.ByCategory[r.Category] = append(out.ByCategory[r.Category], r)
	}
	return out, nil
}

// GetByID obtiene una clasificación.
func (uc *DefectTypeUseCase) GetByID(ctx context.Context, id string) (*dto.DefectTypeResponse, error) {
	d, err := uc.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	r := toDefectTypeResponse(d)
	return &r, nil
}

// Create da de alta una clasificación. La categoría se deriva del código si no se envía.
func (uc *DefectTypeUseCase) Create(ctx context.Context, in dto.CreateDefectTypeRequest) (*dto.DefectTypeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, domain.NewValidationError("code", "campo requerido")
	}
	existing, err := uc.catalog.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, d := range existing {
		if strings.EqualFold(d.Code, code) {
			return nil, domain.ErrDuplicate
		}
	}
	category := entity.DefectCategory(in.Category)
	if category == "" {
		category = engine.ClassifyDefect(code)
	}
	d := &entity.DefectType{
		ID:          uuid.New().String(),
		Code:        code,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.catalog.Create(ctx, d); err != nil {
		return nil, err
	}
	r := toDefectTypeResponse(d)
	return &r, nil
}

func toDefectTypeResponse(d *entity.DefectType) dto.DefectTypeResponse {
	return dto.DefectTypeResponse{
		ID:          d.ID,
		Code:        d.Code,
		Description: d.Description,
		Category:    string(d.Category),
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
	}
}
