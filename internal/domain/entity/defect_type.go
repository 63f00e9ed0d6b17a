package entity

import "time"

// DefectCategory clasificación derivada del prefijo del código de defecto.
type DefectCategory string

const (
	DefectReported DefectCategory = "reclamado"  // DR: síntoma informado por el cliente
	DefectFound    DefectCategory = "encontrado" // DE/ER: causa confirmada por el técnico
	DefectOther    DefectCategory = "outro"
)

// DefectType entrada del catálogo de tipos de mantenimiento/defecto.
type DefectType struct {
	ID          string
	Code        string
	Description string
	Category    DefectCategory
	Active      bool
	CreatedAt   time.Time
}
