package movement

import (
	"context"
	"fmt"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// SlipData datos resueltos para imprimir la guía de un movimiento.
// Las referencias que ya no existen quedan en nil y se imprimen por ID.
type SlipData struct {
	Movement        *entity.Movement
	Equipment       *entity.Equipment
	Origin          *entity.Company
	Destination     *entity.Company
	DefectReported  *entity.DefectType
	DefectFound     *entity.DefectType
	MaintenanceType *entity.DefectType
}

// SlipRenderer genera el documento de la guía.
type SlipRenderer interface {
	RenderSlip(ctx context.Context, data SlipData) ([]byte, error)
}

// SlipUseCase arma la guía imprimible que acompaña a un equipo en un movimiento.
type SlipUseCase struct {
	movements repository.MovementRepository
	equipment repository.EquipmentRepository
	companies CompanyLookup
	defects   DefectLookup
	renderer  SlipRenderer
}

// NewSlipUseCase construye el caso de uso.
func NewSlipUseCase(
	movements repository.MovementRepository,
	equipment repository.EquipmentRepository,
	companies CompanyLookup,
	defects DefectLookup,
	renderer SlipRenderer,
) *SlipUseCase {
	return &SlipUseCase{movements: movements, equipment: equipment, companies: companies, defects: defects, renderer: renderer}
}

// Generate devuelve el documento y un nombre de archivo sugerido.
// domain.ErrNotFound si el movimiento no existe.
func (uc *SlipUseCase) Generate(ctx context.Context, movementID string) ([]byte, string, error) {
	m, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, "", err
	}
	if m == nil {
		return nil, "", domain.ErrNotFound
	}
	data := SlipData{Movement: m}
	if data.Equipment, err = uc.equipment.GetByID(ctx, m.EquipmentID); err != nil {
		return nil, "", err
	}
	if data.Origin, err = uc.company(ctx, m.OriginCompanyID); err != nil {
		return nil, "", err
	}
	if data.Destination, err = uc.company(ctx, m.DestinationCompanyID); err != nil {
		return nil, "", err
	}
	if data.DefectReported, err = uc.defect(ctx, m.DefectReportedID); err != nil {
		return nil, "", err
	}
	if data.DefectFound, err = uc.defect(ctx, m.DefectFoundID); err != nil {
		return nil, "", err
	}
	if data.MaintenanceType, err = uc.defect(ctx, m.MaintenanceTypeID); err != nil {
		return nil, "", err
	}

	doc, err := uc.renderer.RenderSlip(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("guia-%s-%s.pdf", m.Type, m.MovementDate.Format("20060102")), nil
}

func (uc *SlipUseCase) company(ctx context.Context, id string) (*entity.Company, error) {
	if id == "" {
		return nil, nil
	}
	return uc.companies.GetByID(ctx, id)
}

func (uc *SlipUseCase) defect(ctx context.Context, id string) (*entity.DefectType, error) {
	if id == "" {
		return nil, nil
	}
	return uc.defects.GetByID(ctx, id)
}
