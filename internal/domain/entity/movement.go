package entity

import "time"

// Movement registro de auditoría inmutable de un evento que cambia estado o ubicación
// de un equipo. Solo se inserta; nunca se actualiza ni se elimina.
type Movement struct {
	ID                   string
	EquipmentID          string
	Type                 string
	MovementDate         time.Time // fecha de calendario, sin hora
	OriginCompanyID      string
	DestinationCompanyID string
	ResponsibleUser      string
	Notes                string
	DefectReportedID     string // defeito reclamado (DR) u "outro" del catálogo
	DefectFoundID        string // defeito encontrado (DE/ER)
	MaintenanceTypeID    string // campo legado
	CreatedAt            time.Time
}
