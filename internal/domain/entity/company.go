package entity

import "time"

// Company representa una empresa: la operadora (casa), clientes o socios de mantenimiento.
// Es la poseedora actual de los equipos y el origen/destino de los movimientos.
type Company struct {
	ID        string
	Name      string
	TaxID     string // CNPJ, opcional
	Region    string // UF/estado
	Contact   string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
