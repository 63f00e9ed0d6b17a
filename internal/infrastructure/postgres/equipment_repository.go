package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/pkg/textnorm"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const (
	equipmentTable   = "equipamentos"
	equipmentColumns = `id, numero_serie, tipo, COALESCE(modelo, ''), empresa_id, data_entrada, data_saida, status,
		COALESCE(regiao, ''), em_manutencao, created_at, updated_at`
)

// EquipmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un equipo nuevo.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `
		INSERT INTO equipamentos (id, numero_serie, tipo, modelo, empresa_id, data_entrada, data_saida, status,
		                          regiao, em_manutencao, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.SerialNumber, e.Type, e.Model, e.CompanyID, e.EntryDate, e.ExitDate, string(e.Status),
		e.Region, e.InMaintenance, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

// GetBySerial obtiene un equipo por número de serie.
func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*entity.Equipment, error) {
	return r.findOne(ctx, sq.Eq{"numero_serie": serial})
}

func (r *EquipmentRepo) findOne(ctx context.Context, where sq.Eq) (*entity.Equipment, error) {
	query, args, err := psql.Select(equipmentColumns).From(equipmentTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build equipment query: %w", err)
	}
	e, err := scanEquipment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return e, nil
}

// Update persiste los campos mutables.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE equipamentos
		   SET tipo = $2, modelo = $3, empresa_id = $4, data_saida = $5, status = $6,
		       regiao = $7, em_manutencao = $8, updated_at = $9
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.Type, e.Model, e.CompanyID, e.ExitDate, string(e.Status), e.Region, e.InMaintenance, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista equipos con filtros; devuelve la página y el total.
func (r *EquipmentRepo) List(ctx context.Context, f repository.EquipmentFilter) ([]*entity.Equipment, int, error) {
	where := equipmentWhere(f)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(equipmentTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build equipment count: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}

	b := psql.Select(equipmentColumns).From(equipmentTable).Where(where).OrderBy("numero_serie")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build equipment list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var list []*entity.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

func equipmentWhere(f repository.EquipmentFilter) sq.And {
	where := sq.And{}
	if f.CompanyID != "" {
		where = append(where, sq.Eq{"empresa_id": f.CompanyID})
	}
	if f.Status != "" {
		where = append(where, sq.Eq{"status": f.Status})
	}
	if f.Type != "" {
		where = append(where, sq.Expr("LOWER(tipo) = ?", strings.ToLower(f.Type)))
	}
	if f.Search != "" {
		where = append(where, sq.Expr(`numero_serie ILIKE ? ESCAPE '\'`, textnorm.ContainsPattern(f.Search)))
	}
	if f.Out != nil {
		if *f.Out {
			where = append(where, sq.NotEq{"data_saida": nil})
		} else {
			where = append(where, sq.Eq{"data_saida": nil})
		}
	}
	return where
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var (
		e      entity.Equipment
		status string
	)
	if err := row.Scan(
		&e.ID, &e.SerialNumber, &e.Type, &e.Model, &e.CompanyID, &e.EntryDate, &e.ExitDate, &status,
		&e.Region, &e.InMaintenance, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Status = entity.EquipmentStatus(status)
	return &e, nil
}
