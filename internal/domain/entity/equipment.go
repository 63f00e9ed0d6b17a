package entity

import "time"

// EquipmentStatus estado de un equipo. Enumeración plana: cualquier estado puede seguir a cualquier otro.
type EquipmentStatus string

const (
	StatusAvailable           EquipmentStatus = "disponivel"
	StatusInUse               EquipmentStatus = "em_uso"
	StatusInMaintenance       EquipmentStatus = "em_manutencao"
	StatusAwaitingMaintenance EquipmentStatus = "aguardando_manutencao"
	StatusDamaged             EquipmentStatus = "danificado"
	StatusUnavailable         EquipmentStatus = "indisponivel"
	StatusReturned            EquipmentStatus = "devolvido"
)

var validStatuses = map[EquipmentStatus]struct{}{
	StatusAvailable:           {},
	StatusInUse:               {},
	StatusInMaintenance:       {},
	StatusAwaitingMaintenance: {},
	StatusDamaged:             {},
	StatusUnavailable:         {},
	StatusReturned:            {},
}

// Valid informa si el estado pertenece a la enumeración.
func (s EquipmentStatus) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// Equipment unidad física rastreada por número de serie.
// ExitDate != nil significa que el equipo salió del stock original.
type Equipment struct {
	ID            string
	SerialNumber  string
	Type          string
	Model         string
	CompanyID     string
	EntryDate     time.Time
	ExitDate      *time.Time
	Status        EquipmentStatus
	Region        string
	InMaintenance bool // em_manutencao
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOut informa si el equipo está fuera del stock original.
func (e *Equipment) IsOut() bool {
	return e.ExitDate != nil
}
