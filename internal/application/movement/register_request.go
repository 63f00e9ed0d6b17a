package movement

import (
	"context"
	"strings"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
)

// RegisterFromRequest adapta el request HTTP al caso de uso Register.
// responsibleUser es el nombre mostrado del usuario autenticado.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, responsibleUser string, in dto.RegisterMovementRequest) (*dto.BatchResponse, error) {
	req, err := RequestFromDTO(responsibleUser, in)
	if err != nil {
		return nil, err
	}
	res, err := uc.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return ToBatchResponse(res), nil
}

// RequestFromDTO traduce el body del endpoint a una solicitud del motor.
func RequestFromDTO(responsibleUser string, in dto.RegisterMovementRequest) (engine.Request, error) {
	b := engine.NewRequest(engine.Type(strings.ToLower(strings.TrimSpace(in.Type)))).
		Equipment(in.EquipmentIDs...).
		From(strings.TrimSpace(in.OriginCompanyID)).
		To(strings.TrimSpace(in.DestinationCompanyID)).
		MaintenanceType(strings.TrimSpace(in.MaintenanceTypeID)).
		DefectFound(strings.TrimSpace(in.DefectFoundID)).
		Status(entity.EquipmentStatus(strings.TrimSpace(in.Status))).
		Notes(in.Notes).
		Correct(in.EquipmentType, in.EquipmentModel).
		By(responsibleUser)

	if in.MovementDate != "" {
		date, err := engine.ParseDate(in.MovementDate)
		if err != nil {
			return engine.Request{}, domain.NewValidationError("movement_date", "fecha inválida, use AAAA-MM-DD")
		}
		b.On(date)
	}
	if id := strings.TrimSpace(in.OtherDefectID); id != "" {
		b.OtherDefect(id)
	}
	if id := strings.TrimSpace(in.DefectReportedID); id != "" {
		b.DefectReported(id)
	}
	return b.Build(), nil
}
