package dto

import "time"

// CreateDefectTypeRequest alta de una clasificación de defecto o tipo de mantenimiento.
// Si Category viene vacía se deriva del prefijo del código.
type CreateDefectTypeRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=20"`
	Description string `json:"description" validate:"required,max=200"`
	Category    string `json:"category" validate:"omitempty,oneof=reclamado encontrado outro"`
}

// DefectTypeResponse salida de una clasificación.
type DefectTypeResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefectTypeListResponse catálogo agrupado por categoría.
type DefectTypeListResponse struct {
	Items      []DefectTypeResponse            `json:"items"`
	ByCategory map[string][]DefectTypeResponse `json:"by_category"`
}
