package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// Un movimiento se aplica a uno o más equipos con los mismos datos.
type RegisterMovementRequest struct {
	Type                 string   `json:"movement_type" validate:"required"`
	EquipmentIDs         []string `json:"equipment_ids" validate:"required,min=1,dive,required"`
	MovementDate         string   `json:"movement_date" validate:"required,datetime=2006-01-02"`
	OriginCompanyID      string   `json:"origin_company_id,omitempty"`
	DestinationCompanyID string   `json:"destination_company_id,omitempty"`
	MaintenanceTypeID    string   `json:"maintenance_type_id,omitempty"`
	DefectReportedID     string   `json:"defect_reported_id,omitempty"`
	OtherDefectID        string   `json:"other_defect_id,omitempty" validate:"excluded_with=DefectReportedID"`
	DefectFoundID        string   `json:"defect_found_id,omitempty"`
	Status               string   `json:"status,omitempty"`
	Notes                string   `json:"notes,omitempty" validate:"max=2000"`
	EquipmentType        string   `json:"equipment_type,omitempty" validate:"max=100"`
	EquipmentModel       string   `json:"equipment_model,omitempty" validate:"max=100"`
}

// MovementResponse salida de un registro de movimiento.
type MovementResponse struct {
	ID                   string    `json:"id"`
	EquipmentID          string    `json:"equipment_id"`
	Type                 string    `json:"movement_type"`
	MovementDate         string    `json:"movement_date"`
	OriginCompanyID      string    `json:"origin_company_id,omitempty"`
	DestinationCompanyID string    `json:"destination_company_id,omitempty"`
	ResponsibleUser      string    `json:"responsible_user"`
	Notes                string    `json:"notes,omitempty"`
	DefectReportedID     string    `json:"defect_reported_id,omitempty"`
	DefectFoundID        string    `json:"defect_found_id,omitempty"`
	MaintenanceTypeID    string    `json:"maintenance_type_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// BatchResponse resultado de un lote aplicado.
type BatchResponse struct {
	Movements []MovementResponse  `json:"movements"`
	Equipment []EquipmentResponse `json:"equipment"`
}

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	PageRequest
	EquipmentID string `query:"equipment_id"`
	CompanyID   string `query:"company_id"`
	Type        string `query:"movement_type"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
