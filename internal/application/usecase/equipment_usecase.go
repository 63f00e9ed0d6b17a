package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// EquipmentUseCase registro de equipos. El estado y la empresa poseedora sólo
// cambian mediante movimientos; aquí se dan de alta y se corrigen datos descriptivos.
type EquipmentUseCase struct {
	repo      repository.EquipmentRepository
	movements repository.MovementRepository
	companies appmovement.CompanyLookup
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repo repository.EquipmentRepository, movements repository.MovementRepository, companies appmovement.CompanyLookup) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, movements: movements, companies: companies}
}

// Create da de alta un equipo. Devuelve domain.ErrDuplicate si el número de serie ya existe.
func (uc *EquipmentUseCase) Create(ctx context.Context, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	if serial == "" {
		return nil, domain.NewValidationError("serial_number", "campo requerido")
	}
	existing, err := uc.repo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewValidationError("company_id", "empresa no encontrada: "+in.CompanyID)
	}

	status := entity.StatusAvailable
	if in.Status != "" {
		status = entity.EquipmentStatus(in.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "estado desconocido: "+in.Status)
		}
	}

	now := time.Now()
	entry := engine.DateOnly(now)
	if in.EntryDate != "" {
		entry, err = engine.ParseDate(in.EntryDate)
		if err != nil {
			return nil, domain.NewValidationError("entry_date", "fecha inválida, use AAAA-MM-DD")
		}
	}
	region := strings.TrimSpace(in.Region)
	if region == "" {
		region = company.Region
	}

	e := &entity.Equipment{
		ID:            uuid.New().String(),
		SerialNumber:  serial,
		Type:          strings.TrimSpace(in.Type),
		Model:         strings.TrimSpace(in.Model),
		CompanyID:     company.ID,
		EntryDate:     entry,
		Status:        status,
		Region:        region,
		InMaintenance: status == entity.StatusInMaintenance || status == entity.StatusAwaitingMaintenance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return appmovement.ToEquipmentResponse(e), nil
}

// GetByID obtiene un equipo por ID.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, id string) (*dto.EquipmentResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return appmovement.ToEquipmentResponse(e), nil
}

// Update corrige tipo, modelo o región. Devuelve domain.ErrNotFound si el equipo no existe.
func (uc *EquipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		t := strings.TrimSpace(*in.Type)
		if t == "" {
			return nil, domain.NewValidationError("type", "campo requerido")
		}
		e.Type = t
	}
	if in.Model != nil {
		e.Model = strings.TrimSpace(*in.Model)
	}
	if in.Region != nil {
		e.Region = strings.TrimSpace(*in.Region)
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return appmovement.ToEquipmentResponse(e), nil
}

// List lista equipos con filtros y paginación.
func (uc *EquipmentUseCase) List(ctx context.Context, in dto.EquipmentListRequest) (*dto.EquipmentListResponse, error) {
	in.DefaultPage()
	f := repository.EquipmentFilter{
		CompanyID: strings.TrimSpace(in.CompanyID),
		Type:      strings.TrimSpace(in.Type),
		Search:    strings.TrimSpace(in.Search),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Status != "" {
		if !entity.EquipmentStatus(in.Status).Valid() {
			return nil, domain.NewValidationError("status", "estado desconocido: "+in.Status)
		}
		f.Status = in.Status
	}
	switch in.Out {
	case "true":
		out := true
		f.Out = &out
	case "false":
		out := false
		f.Out = &out
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *appmovement.ToEquipmentResponse(e))
	}
	return &dto.EquipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// History devuelve los movimientos de un equipo, más recientes primero.
func (uc *EquipmentUseCase) History(ctx context.Context, id string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, total, err := uc.movements.List(ctx, repository.MovementFilter{EquipmentID: id, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *appmovement.ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
