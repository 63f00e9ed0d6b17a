package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	EquipmentID string
	CompanyID   string // origen o destino
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository puerto append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
}
