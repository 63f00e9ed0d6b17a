package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/pkg/taxid"
	"github.com/jhoicas/tacom-api/pkg/textnorm"
)

// CompanyCache invalidación de la caché del directorio tras una modificación.
type CompanyCache interface {
	Forget(ctx context.Context, id string)
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo   repository.CompanyRepository
	cache  CompanyCache
	policy engine.Policy
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
// cache puede ser nil.
func NewCompanyUseCase(repo repository.CompanyRepository, cache CompanyCache, policy engine.Policy) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, cache: cache, policy: policy}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si ya existe otra con el mismo nombre
// (sin distinguir mayúsculas ni acentos).
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "campo requerido")
	}
	tax, err := normalizeTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     tax,
		Region:    strings.TrimSpace(in.Region),
		Contact:   strings.TrimSpace(in.Contact),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return uc.toResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return uc.toResponse(company), nil
}

// Update modifica los campos enviados. Devuelve domain.ErrNotFound si la empresa no existe.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "campo requerido")
		}
		if err := uc.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}
		company.Name = name
	}
	if in.TaxID != nil {
		tax, err := normalizeTaxID(*in.TaxID)
		if err != nil {
			return nil, err
		}
		company.TaxID = tax
	}
	if in.Region != nil {
		company.Region = strings.TrimSpace(*in.Region)
	}
	if in.Contact != nil {
		company.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Phone != nil {
		company.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		company.Email = strings.TrimSpace(*in.Email)
	}
	if in.Active != nil {
		if !*in.Active && uc.policy.IsHome(id) {
			return nil, domain.ErrConflict
		}
		company.Active = *in.Active
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Forget(ctx, id)
	}
	return uc.toResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *CompanyUseCase) ensureUniqueName(ctx context.Context, name, selfID string) error {
	all, err := uc.repo.List(ctx, 0, 0)
	if err != nil {
		return err
	}
	key := textnorm.Key(name)
	for _, c := range all {
		if c.ID != selfID && textnorm.Key(c.Name) == key {
			return domain.ErrDuplicate
		}
	}
	return nil
}

// normalizeTaxID acepta vacío o un CNPJ válido con o sin máscara; se guarda sólo con dígitos.
func normalizeTaxID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if err := taxid.ValidateCNPJ(s); err != nil {
		return "", domain.NewValidationError("tax_id", err.Error())
	}
	return taxid.NormalizeCNPJ(s), nil
}

func (uc *CompanyUseCase) toResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Region:    c.Region,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Active:    c.Active,
		IsHome:    uc.policy.IsHome(c.ID),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
