package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

// BatchMode define el alcance transaccional de un lote.
type BatchMode string

const (
	// BatchAtomic: una transacción para todo el lote; si algo falla no queda nada escrito.
	BatchAtomic BatchMode = "atomic"
	// BatchSequential: una transacción por equipo, en orden; el primer fallo corta el lote.
	BatchSequential BatchMode = "sequential"
)

// BatchResult resultado de un lote aplicado completo.
type BatchResult struct {
	Movements []entity.Movement
	Equipment []entity.Equipment // estado final de cada equipo
}

// RegisterMovementUseCase traduce una solicitud de movimiento sobre N equipos en
// N registros de auditoría y N actualizaciones de equipo.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	equipmentRepo repository.EquipmentRepository
	companies     CompanyLookup
	defects       DefectLookup
	policy        engine.Policy
	mode          BatchMode
	log           *logger.Logger
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	equipmentRepo repository.EquipmentRepository,
	companies CompanyLookup,
	defects DefectLookup,
	policy engine.Policy,
	mode BatchMode,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if mode == "" {
		mode = BatchAtomic
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		equipmentRepo: equipmentRepo,
		companies:     companies,
		defects:       defects,
		policy:        policy,
		mode:          mode,
		log:           log.Component("movement"),
		now:           time.Now,
	}
}

// Policy devuelve la política de empresas con la que se construyó el caso de uso.
func (uc *RegisterMovementUseCase) Policy() engine.Policy {
	return uc.policy
}

// Register valida la solicitud, carga los equipos y aplica el lote.
// Los errores de validación (*domain.ValidationError) se devuelven antes de escribir nada;
// los de persistencia llegan como *domain.PersistenceError.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, req engine.Request) (*BatchResult, error) {
	req = engine.Resolve(req, uc.policy)
	if err := engine.Validate(req, uc.policy); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	items := make([]*entity.Equipment, 0, len(req.EquipmentIDs))
	for _, id := range req.EquipmentIDs {
		e, err := uc.equipmentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("cargar equipo %s: %w", id, err)
		}
		if e == nil {
			return nil, domain.NewValidationError("equipment_ids", "equipo no encontrado: "+id)
		}
		items = append(items, e)
	}

	uc.log.Info().
		Str("type", string(req.Type)).
		Int("equipment", len(items)).
		Str("mode", string(uc.mode)).
		Str("user", req.ResponsibleUser).
		Msg("registrando movimiento")

	now := uc.now()
	if uc.mode == BatchSequential {
		return uc.applySequential(ctx, req, items, now)
	}
	return uc.applyAtomic(ctx, req, items, now)
}

func (uc *RegisterMovementUseCase) applyAtomic(ctx context.Context, req engine.Request, items []*entity.Equipment, now time.Time) (*BatchResult, error) {
	var (
		result *BatchResult
		failed string
	)
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, equipmentRepo repository.EquipmentRepository) error {
		// La función puede reintentarse: el resultado se arma desde cero.
		result = &BatchResult{}
		for _, e := range items {
			mov, updated, err := uc.applyOne(ctx, movRepo, equipmentRepo, req, e, now)
			if err != nil {
				failed = e.ID
				return err
			}
			result.Movements = append(result.Movements, mov)
			result.Equipment = append(result.Equipment, updated)
		}
		return nil
	})
	if err != nil {
		pending := make([]string, 0, len(items))
		for _, e := range items {
			if e.ID != failed {
				pending = append(pending, e.ID)
			}
		}
		uc.log.Error().Err(err).Str("equipment_id", failed).Msg("lote revertido")
		return nil, &domain.PersistenceError{EquipmentID: failed, Pending: pending, Err: err}
	}
	return result, nil
}

func (uc *RegisterMovementUseCase) applySequential(ctx context.Context, req engine.Request, items []*entity.Equipment, now time.Time) (*BatchResult, error) {
	result := &BatchResult{}
	committed := make([]string, 0, len(items))
	for i, e := range items {
		var (
			mov     entity.Movement
			updated entity.Equipment
		)
		err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, equipmentRepo repository.EquipmentRepository) error {
			var err error
			mov, updated, err = uc.applyOne(ctx, movRepo, equipmentRepo, req, e, now)
			return err
		})
		if err != nil {
			pending := make([]string, 0, len(items)-i-1)
			for _, rest := range items[i+1:] {
				pending = append(pending, rest.ID)
			}
			uc.log.Error().Err(err).
				Str("equipment_id", e.ID).
				Int("committed", len(committed)).
				Int("pending", len(pending)).
				Msg("lote interrumpido")
			return nil, &domain.PersistenceError{EquipmentID: e.ID, Committed: committed, Pending: pending, Err: err}
		}
		committed = append(committed, e.ID)
		result.Movements = append(result.Movements, mov)
		result.Equipment = append(result.Equipment, updated)
	}
	return result, nil
}

// applyOne inserta el movimiento y actualiza el equipo con los repositorios de la transacción.
func (uc *RegisterMovementUseCase) applyOne(
	ctx context.Context,
	movRepo repository.MovementRepository,
	equipmentRepo repository.EquipmentRepository,
	req engine.Request,
	current *entity.Equipment,
	now time.Time,
) (entity.Movement, entity.Equipment, error) {
	patch := engine.DerivePatch(req, current, uc.policy)
	mov := engine.BuildMovement(req, current, now)
	mov.ID = uuid.New().String()
	if err := movRepo.Create(ctx, &mov); err != nil {
		return entity.Movement{}, entity.Equipment{}, err
	}

	updated := *current
	if patch.IsEmpty() {
		return mov, updated, nil
	}
	patch.Apply(&updated)
	updated.UpdatedAt = now
	if err := equipmentRepo.Update(ctx, &updated); err != nil {
		return entity.Movement{}, entity.Equipment{}, err
	}
	return mov, updated, nil
}

// checkReferences verifica que las empresas y clasificaciones citadas existan y
// que cada defecto tenga la categoría del campo donde se usa.
func (uc *RegisterMovementUseCase) checkReferences(ctx context.Context, req engine.Request) error {
	for _, ref := range []struct{ field, id string }{
		{"origin_company_id", req.OriginCompanyID},
		{"destination_company_id", req.DestinationCompanyID},
	} {
		if ref.id == "" {
			continue
		}
		c, err := uc.companies.GetByID(ctx, ref.id)
		if err != nil {
			return fmt.Errorf("consultar empresa %s: %w", ref.id, err)
		}
		if c == nil {
			return domain.NewValidationError(ref.field, "empresa no encontrada: "+ref.id)
		}
	}

	for _, ref := range []struct {
		field    string
		id       string
		category entity.DefectCategory
	}{
		{"defect_reported_id", req.DefectReportedID, entity.DefectReported},
		{"other_defect_id", req.OtherDefectID, entity.DefectOther},
		{"defect_found_id", req.DefectFoundID, entity.DefectFound},
		{"maintenance_type_id", req.MaintenanceTypeID, ""},
	} {
		if ref.id == "" {
			continue
		}
		d, err := uc.defects.GetByID(ctx, ref.id)
		if err != nil {
			return fmt.Errorf("consultar clasificación %s: %w", ref.id, err)
		}
		if d == nil {
			return domain.NewValidationError(ref.field, "clasificación no encontrada: "+ref.id)
		}
		if ref.category != "" && d.Category != ref.category {
			return domain.NewValidationError(ref.field, fmt.Sprintf("%s no es un defecto %s", d.Code, ref.category))
		}
	}
	return nil
}
