package movement

import (
	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ToBatchResponse convierte el resultado de un lote en su representación HTTP.
func ToBatchResponse(res *BatchResult) *dto.BatchResponse {
	if res == nil {
		return nil
	}
	out := &dto.BatchResponse{
		Movements: make([]dto.MovementResponse, 0, len(res.Movements)),
		Equipment: make([]dto.EquipmentResponse, 0, len(res.Equipment)),
	}
	for i := range res.Movements {
		out.Movements = append(out.Movements, *ToMovementResponse(&res.Movements[i]))
	}
	for i := range res.Equipment {
		out.Equipment = append(out.Equipment, *ToEquipmentResponse(&res.Equipment[i]))
	}
	return out
}

func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:                   m.ID,
		EquipmentID:          m.EquipmentID,
		Type:                 m.Type,
		MovementDate:         m.MovementDate.Format(dateLayout),
		OriginCompanyID:      m.OriginCompanyID,
		DestinationCompanyID: m.DestinationCompanyID,
		ResponsibleUser:      m.ResponsibleUser,
		Notes:                m.Notes,
		DefectReportedID:     m.DefectReportedID,
		DefectFoundID:        m.DefectFoundID,
		MaintenanceTypeID:    m.MaintenanceTypeID,
		CreatedAt:            m.CreatedAt,
	}
}

func ToEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	out := &dto.EquipmentResponse{
		ID:            e.ID,
		SerialNumber:  e.SerialNumber,
		Type:          e.Type,
		Model:         e.Model,
		CompanyID:     e.CompanyID,
		Status:        string(e.Status),
		Region:        e.Region,
		InMaintenance: e.InMaintenance,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if !e.EntryDate.IsZero() {
		out.EntryDate = e.EntryDate.Format(dateLayout)
	}
	if e.ExitDate != nil {
		s := e.ExitDate.Format(dateLayout)
		out.ExitDate = &s
	}
	return out
}
