package movement

import (
	"context"
	"strings"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el registro de movimientos.
type QueryUseCase struct {
	repo   repository.MovementRepository
	policy engine.Policy
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.MovementRepository, policy engine.Policy) *QueryUseCase {
	return &QueryUseCase{repo: repo, policy: policy}
}

// List devuelve movimientos filtrados, más recientes primero.
func (uc *QueryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	f := repository.MovementFilter{
		EquipmentID: strings.TrimSpace(in.EquipmentID),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.Type != "" {
		t, err := engine.ParseType(in.Type)
		if err != nil {
			return nil, domain.NewValidationError("movement_type", err.Error())
		}
		f.Type = string(t)
	}
	if in.From != "" {
		d, err := engine.ParseDate(in.From)
		if err != nil {
			return nil, domain.NewValidationError("from", "fecha inválida, use AAAA-MM-DD")
		}
		f.From = &d
	}
	if in.To != "" {
		d, err := engine.ParseDate(in.To)
		if err != nil {
			return nil, domain.NewValidationError("to", "fecha inválida, use AAAA-MM-DD")
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, domain.NewValidationError("to", "la fecha final es anterior a la inicial")
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Rules devuelve las reglas de formulario de un tipo bajo la política configurada.
func (uc *QueryUseCase) Rules(movementType string) (*engine.Rules, error) {
	t, err := engine.ParseType(movementType)
	if err != nil {
		return nil, domain.NewValidationError("movement_type", err.Error())
	}
	r := engine.FieldRules(t, uc.policy)
	return &r, nil
}
