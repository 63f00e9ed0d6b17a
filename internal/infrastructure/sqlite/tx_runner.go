package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción GORM con repositorios atados a ella.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run confirma si fn devuelve nil y revierte en caso contrario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewMovementRepository(tx), NewEquipmentRepository(tx))
	})
}
