package repository

import (
	"context"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// EquipmentFilter filtros de listado de equipos.
type EquipmentFilter struct {
	CompanyID string
	Status    string
	Type      string
	Search    string // coincidencia parcial por número de serie
	Out       *bool  // true: con fecha de salida; false: en stock
	Limit     int
	Offset    int
}

// EquipmentRepository define el puerto de persistencia para Equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error)
	// Update persiste los campos mutables (empresa, estado, salida, bandera de mantenimiento, tipo, modelo, región).
	Update(ctx context.Context, e *entity.Equipment) error
	List(ctx context.Context, f EquipmentFilter) ([]*entity.Equipment, int, error)
}
