package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const (
	movementTable       = "movimentacoes"
	movementBaseColumns = `id, equipamento_id, tipo_movimentacao, data_movimentacao, empresa_origem_id, empresa_destino_id,
		COALESCE(responsavel, ''), COALESCE(observacoes, ''), `
	movementColumns       = movementBaseColumns + `defeito_reclamado_id, defeito_encontrado_id, tipo_manutencao_id, created_at`
	movementLegacyColumns = movementBaseColumns + `NULL::text, NULL::text, tipo_manutencao_id, created_at`
)

// MovementRepo registro append-only de movimientos (usable con pool o tx).
type MovementRepo struct {
	q              Querier
	columns        string
	classification bool
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
// classification=false para esquemas sin las columnas de defecto reclamado/encontrado.
func NewMovementRepository(q Querier, classification bool) *MovementRepo {
	cols := movementColumns
	if !classification {
		cols = movementLegacyColumns
	}
	return &MovementRepo{q: q, columns: cols, classification: classification}
}

// Create inserta un movimiento. Las columnas de clasificación se omiten cuando vienen vacías
// y siempre en esquemas sin defeito_reclamado_id/defeito_encontrado_id.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	values := map[string]any{
		"id":                 m.ID,
		"equipamento_id":     m.EquipmentID,
		"tipo_movimentacao":  m.Type,
		"data_movimentacao":  m.MovementDate,
		"empresa_origem_id":  nullIfEmpty(m.OriginCompanyID),
		"empresa_destino_id": nullIfEmpty(m.DestinationCompanyID),
		"responsavel":        m.ResponsibleUser,
		"observacoes":        m.Notes,
		"created_at":         m.CreatedAt,
	}
	if r.classification {
		if m.DefectReportedID != "" {
			values["defeito_reclamado_id"] = m.DefectReportedID
		}
		if m.DefectFoundID != "" {
			values["defeito_encontrado_id"] = m.DefectFoundID
		}
	}
	if m.MaintenanceTypeID != "" {
		values["tipo_manutencao_id"] = m.MaintenanceTypeID
	}
	query, args, err := psql.Insert(movementTable).SetMap(values).ToSql()
	if err != nil {
		return fmt.Errorf("build movement insert: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query, args, err := psql.Select(r.columns).From(movementTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos filtrados, más recientes primero, y el total.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	where := sq.And{}
	if f.EquipmentID != "" {
		where = append(where, sq.Eq{"equipamento_id": f.EquipmentID})
	}
	if f.CompanyID != "" {
		where = append(where, sq.Or{sq.Eq{"empresa_origem_id": f.CompanyID}, sq.Eq{"empresa_destino_id": f.CompanyID}})
	}
	if f.Type != "" {
		where = append(where, sq.Eq{"tipo_movimentacao": f.Type})
	}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"data_movimentacao": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"data_movimentacao": *f.To})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(movementTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build movement count: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	b := psql.Select(r.columns).From(movementTable).Where(where).
		OrderBy("data_movimentacao DESC", "created_at DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build movement list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m                                 entity.Movement
		origin, dest, reported, found, mt *string
	)
	if err := row.Scan(
		&m.ID, &m.EquipmentID, &m.Type, &m.MovementDate, &origin, &dest,
		&m.ResponsibleUser, &m.Notes, &reported, &found, &mt, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.OriginCompanyID = deref(origin)
	m.DestinationCompanyID = deref(dest)
	m.DefectReportedID = deref(reported)
	m.DefectFoundID = deref(found)
	m.MaintenanceTypeID = deref(mt)
	return &m, nil
}
