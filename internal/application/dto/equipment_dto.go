package dto

import "time"

// CreateEquipmentRequest entrada para dar de alta un equipo.
type CreateEquipmentRequest struct {
	SerialNumber string `json:"serial_number" validate:"required,min=1,max=100"`
	Type         string `json:"type" validate:"required,max=100"`
	Model        string `json:"model" validate:"omitempty,max=100"`
	CompanyID    string `json:"company_id" validate:"required"`
	EntryDate    string `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string `json:"status" validate:"omitempty"`
	Region       string `json:"region" validate:"omitempty,max=100"`
}

// UpdateEquipmentRequest corrección de datos descriptivos; el estado y la empresa
// sólo cambian mediante movimientos.
type UpdateEquipmentRequest struct {
	Type   *string `json:"type" validate:"omitempty,min=1,max=100"`
	Model  *string `json:"model" validate:"omitempty,max=100"`
	Region *string `json:"region" validate:"omitempty,max=100"`
}

// EquipmentListRequest filtros de GET /api/equipment.
type EquipmentListRequest struct {
	PageRequest
	CompanyID string `query:"company_id"`
	Status    string `query:"status"`
	Type      string `query:"type"`
	Search    string `query:"q"`
	Out       string `query:"out" validate:"omitempty,oneof=true false"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID            string    `json:"id"`
	SerialNumber  string    `json:"serial_number"`
	Type          string    `json:"type"`
	Model         string    `json:"model,omitempty"`
	CompanyID     string    `json:"company_id"`
	EntryDate     string    `json:"entry_date,omitempty"`
	ExitDate      *string   `json:"exit_date,omitempty"`
	Status        string    `json:"status"`
	Region        string    `json:"region,omitempty"`
	InMaintenance bool      `json:"in_maintenance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EquipmentListResponse lista paginada de equipos.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
