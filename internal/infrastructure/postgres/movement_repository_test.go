package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// captureQuerier guarda las sentencias enviadas a Exec.
type captureQuerier struct {
	sql  []string
	args [][]any
}

func (c *captureQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.sql = append(c.sql, sql)
	c.args = append(c.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (c *captureQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado")
}

func (c *captureQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado")
}

func classifiedMovement() *entity.Movement {
	return &entity.Movement{
		ID:                "m1",
		EquipmentID:       "E1",
		Type:              "manutencao",
		MovementDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		OriginCompanyID:   "home",
		ResponsibleUser:   "Ana",
		DefectReportedID:  "DR01",
		DefectFoundID:     "DE01",
		MaintenanceTypeID: "MT1",
		CreatedAt:         time.Now(),
	}
}

func TestMovementRepo_CreateConClasificacion(t *testing.T) {
	q := &captureQuerier{}
	require.NoError(t, NewMovementRepository(q, true).Create(context.Background(), classifiedMovement()))

	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "defeito_reclamado_id")
	assert.Contains(t, q.sql[0], "defeito_encontrado_id")
	assert.Contains(t, q.sql[0], "tipo_manutencao_id")
	assert.Contains(t, q.args[0], "DR01")
}

func TestMovementRepo_CreateEsquemaLegadoOmiteDefectos(t *testing.T) {
	q := &captureQuerier{}
	require.NoError(t, NewMovementRepository(q, false).Create(context.Background(), classifiedMovement()))

	require.Len(t, q.sql, 1)
	assert.NotContains(t, q.sql[0], "defeito_reclamado_id")
	assert.NotContains(t, q.sql[0], "defeito_encontrado_id")
	assert.Contains(t, q.sql[0], "tipo_manutencao_id")
	assert.NotContains(t, q.args[0], "DR01")
	assert.Contains(t, q.args[0], "MT1")
}
