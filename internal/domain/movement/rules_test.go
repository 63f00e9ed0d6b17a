package movement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/movement"
)

var (
	testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	policy   = movement.Policy{
		HomeCompanyID:                "home",
		MaintenancePartnerID:         "partner",
		HomeFamily:                   []string{"home-sp"},
		SupportsDefectClassification: true,
	}
)

func equipment(status entity.EquipmentStatus, company string) *entity.Equipment {
	return &entity.Equipment{ID: "E1", SerialNumber: "SN-1", Type: "rastreador", Status: status, CompanyID: company}
}

func resolveAndValidate(t *testing.T, req movement.Request) movement.Request {
	t.Helper()
	req = movement.Resolve(req, policy)
	require.NoError(t, movement.Validate(req, policy))
	return req
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	return ve.Field
}

// ── Derivación por tipo ──────────────────────────────────────────────────────

func TestDerivePatch_SaidaFijaEmpresaYFechaDeSalida(t *testing.T) {
	for _, st := range []entity.EquipmentStatus{entity.StatusAvailable, entity.StatusDamaged, entity.StatusInUse} {
		req := resolveAndValidate(t, movement.NewRequest(movement.TypeExit).Equipment("E1").On(testDate).To("cliente").Build())
		e := equipment(st, "home")

		movement.DerivePatch(req, e, policy).Apply(e)

		require.NotNil(t, e.ExitDate)
		assert.Equal(t, testDate, *e.ExitDate)
		assert.Equal(t, "cliente", e.CompanyID)
		assert.Equal(t, st, e.Status, "sin override el estado no cambia en saída")
	}
}

func TestDerivePatch_SaidaConOverride(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeExit).Equipment("E1").On(testDate).
		To("cliente").Status(entity.StatusUnavailable).Build())
	e := equipment(entity.StatusAvailable, "home")
	movement.DerivePatch(req, e, policy).Apply(e)
	assert.Equal(t, entity.StatusUnavailable, e.Status)
}

func TestDerivePatch_ManutencaoSinOverride(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeMaintenance).Equipment("E1").On(testDate).
		DefectReported("DR01").Build())
	e := equipment(entity.StatusInUse, "cliente")

	movement.DerivePatch(req, e, policy).Apply(e)

	assert.Equal(t, entity.StatusAwaitingMaintenance, e.Status)
	assert.True(t, e.InMaintenance)
	assert.Equal(t, "cliente", e.CompanyID, "manutenção no cambia la empresa")
	assert.Nil(t, e.ExitDate)
}

func TestDerivePatch_DevolucaoVuelveADisponible(t *testing.T) {
	for _, typ := range []movement.Type{movement.TypeReturn, movement.TypeReturnFromMaintenance} {
		req := resolveAndValidate(t, movement.NewRequest(typ).Equipment("E1").On(testDate).OtherDefect("OUT1").Build())
		e := equipment(entity.StatusAwaitingMaintenance, "home")
		e.InMaintenance = true

		movement.DerivePatch(req, e, policy).Apply(e)

		assert.Equal(t, entity.StatusAvailable, e.Status, string(typ))
		assert.False(t, e.InMaintenance, string(typ))
		assert.Equal(t, "home", e.CompanyID, string(typ))
	}
}

func TestDerivePatch_MovimentacaoPorDefectoEnUso(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeAllocation).Equipment("E1").On(testDate).To("cliente").Build())
	e := equipment(entity.StatusAvailable, "home")
	movement.DerivePatch(req, e, policy).Apply(e)
	assert.Equal(t, entity.StatusInUse, e.Status)
	assert.Equal(t, "cliente", e.CompanyID)
}

// ── Regla de clamp ───────────────────────────────────────────────────────────

func TestDerivePatch_ClampEmManutencaoFueraDeLaCasa(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeSendToMaintenance).Equipment("E1").On(testDate).
		From("home").DefectReported("DR01").Status(entity.StatusInMaintenance).Build())
	e := equipment(entity.StatusAvailable, "home")

	movement.DerivePatch(req, e, policy).Apply(e)

	assert.Equal(t, entity.StatusInUse, e.Status, "un socio no puede tener equipos em_manutencao")
	assert.Equal(t, "partner", e.CompanyID)
}

func TestDerivePatch_ClampTransferenciaInternaHaciaDestinoExterno(t *testing.T) {
	// Solicitud construida a mano sin Resolve: el destino no es la casa.
	req := movement.NewRequest(movement.TypeInternalTransfer).Equipment("E1").On(testDate).
		To("cliente").OtherDefect("OUT1").Status(entity.StatusInMaintenance).Build()
	e := equipment(entity.StatusAvailable, "home")

	movement.DerivePatch(req, e, policy).Apply(e)

	assert.Equal(t, entity.StatusInUse, e.Status)
}

func TestDerivePatch_CasaConservaEmManutencao(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeInternalTransfer).Equipment("E1").On(testDate).
		OtherDefect("OUT1").Status(entity.StatusInMaintenance).Build())
	e := equipment(entity.StatusAvailable, "home-sp")

	movement.DerivePatch(req, e, policy).Apply(e)

	assert.Equal(t, entity.StatusInMaintenance, e.Status)
	assert.Equal(t, "home", e.CompanyID)
}

func TestDerivePatch_EntradaSinDestinoUsaEmpresaActualParaClamp(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeEntry).Equipment("E1").On(testDate).
		Status(entity.StatusInMaintenance).Build())

	e := equipment(entity.StatusAvailable, "cliente")
	p := movement.DerivePatch(req, e, policy)
	assert.Nil(t, p.CompanyID)
	p.Apply(e)
	assert.Equal(t, entity.StatusInUse, e.Status)

	e = equipment(entity.StatusAvailable, "home")
	movement.DerivePatch(req, e, policy).Apply(e)
	assert.Equal(t, entity.StatusInMaintenance, e.Status)
}

// ── Escenario completo y correcciones de metadatos ───────────────────────────

func TestEnvioManutencao_EscenarioCompleto(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeSendToMaintenance).Equipment("E1").On(testDate).
		From("home").To("otra").DefectReported("DR01").By("Ana").Build())
	e := equipment(entity.StatusAvailable, "home")

	mov := movement.BuildMovement(req, e, testDate.Add(time.Hour))
	movement.DerivePatch(req, e, policy).Apply(e)

	assert.Equal(t, entity.StatusAwaitingMaintenance, e.Status)
	assert.Equal(t, "partner", e.CompanyID, "el destino se fuerza al socio de mantenimiento")
	assert.True(t, e.InMaintenance)

	assert.Equal(t, "E1", mov.EquipmentID)
	assert.Equal(t, "DR01", mov.DefectReportedID)
	assert.Equal(t, testDate, mov.MovementDate)
	assert.Equal(t, "home", mov.OriginCompanyID)
	assert.Equal(t, "partner", mov.DestinationCompanyID)
	assert.Equal(t, "Ana", mov.ResponsibleUser)
}

func TestDerivePatch_CorrigeTipoYModelo(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeAllocation).Equipment("E1").On(testDate).
		To("cliente").Correct("  bloqueador ", "").Build())
	e := equipment(entity.StatusAvailable, "home")
	e.Model = "X1"

	p := movement.DerivePatch(req, e, policy)
	require.NotNil(t, p.Type)
	assert.Nil(t, p.Model, "modelo vacío no sobrescribe")
	p.Apply(e)
	assert.Equal(t, "bloqueador", e.Type)
	assert.Equal(t, "X1", e.Model)
}

func TestDerivePatch_Idempotente(t *testing.T) {
	for _, typ := range movement.Types() {
		req := movement.NewRequest(typ).Equipment("E1").On(testDate).From("home").To("cliente").
			DefectReported("DR01").MaintenanceType("MT1").Build()
		req = movement.Resolve(req, policy)
		require.NoError(t, movement.Validate(req, policy), string(typ))

		e := equipment(entity.StatusAvailable, "home")
		movement.DerivePatch(req, e, policy).Apply(e)
		first := *e
		movement.DerivePatch(req, e, policy).Apply(e)

		assert.Equal(t, first, *e, "segunda aplicación debe ser no-op para %s", typ)
	}
}

func TestBuildMovement_OrigenDerivadoDelEquipo(t *testing.T) {
	req := resolveAndValidate(t, movement.NewRequest(movement.TypeTransfer).Equipment("E1").On(testDate).To("cliente").Build())
	mov := movement.BuildMovement(req, equipment(entity.StatusInUse, "home-sp"), testDate)
	assert.Equal(t, "home-sp", mov.OriginCompanyID)
	assert.Equal(t, "transferencia", mov.Type)
}

// ── Validación ───────────────────────────────────────────────────────────────

func TestValidate_Campos(t *testing.T) {
	cases := []struct {
		name  string
		req   movement.Request
		field string
	}{
		{"sin equipos", movement.NewRequest(movement.TypeAllocation).On(testDate).To("c").Build(), "equipment_ids"},
		{"equipo repetido", movement.NewRequest(movement.TypeAllocation).Equipment("E1", "E1").On(testDate).To("c").Build(), "equipment_ids"},
		{"tipo vacío", movement.NewRequest("").Equipment("E1").On(testDate).Build(), "movement_type"},
		{"tipo desconocido", movement.NewRequest("venda").Equipment("E1").On(testDate).Build(), "movement_type"},
		{"sin fecha", movement.NewRequest(movement.TypeEntry).Equipment("E1").Build(), "movement_date"},
		{"movimentacao sin destino", movement.NewRequest(movement.TypeAllocation).Equipment("E1").On(testDate).Build(), "destination_company_id"},
		{"saida sin destino", movement.NewRequest(movement.TypeExit).Equipment("E1").On(testDate).Build(), "destination_company_id"},
		{"transferencia sin destino", movement.NewRequest(movement.TypeTransfer).Equipment("E1").On(testDate).Build(), "destination_company_id"},
		{"envio sin origen", movement.NewRequest(movement.TypeSendToMaintenance).Equipment("E1").On(testDate).DefectReported("DR01").Build(), "origin_company_id"},
		{"envio con origen externo", movement.NewRequest(movement.TypeSendToMaintenance).Equipment("E1").On(testDate).From("cliente").DefectReported("DR01").Build(), "origin_company_id"},
		{"manutencao sin defecto", movement.NewRequest(movement.TypeMaintenance).Equipment("E1").On(testDate).DefectFound("DE01").Build(), "defect_reported_id"},
		{"estado desconocido", movement.NewRequest(movement.TypeAllocation).Equipment("E1").On(testDate).To("c").Status("perdido").Build(), "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := movement.Resolve(tc.req, policy)
			err := movement.Validate(req, policy)
			require.Error(t, err)
			assert.Equal(t, tc.field, fieldOf(t, err))
		})
	}
}

func TestValidate_ModoLegadoExigeTipoDeMantenimiento(t *testing.T) {
	legacy := policy
	legacy.SupportsDefectClassification = false

	req := movement.Resolve(movement.NewRequest(movement.TypeReturn).Equipment("E1").On(testDate).DefectReported("DR01").Build(), legacy)
	assert.Equal(t, "maintenance_type_id", fieldOf(t, movement.Validate(req, legacy)))

	req.MaintenanceTypeID = "MT1"
	assert.Equal(t, "defect_reported_id", fieldOf(t, movement.Validate(req, legacy)),
		"sin columnas de clasificación no se aceptan defectos")

	req.DefectReportedID = ""
	assert.NoError(t, movement.Validate(req, legacy))
}

func TestValidate_ModoLegadoRechazaDefectos(t *testing.T) {
	legacy := policy
	legacy.SupportsDefectClassification = false

	req := movement.Resolve(movement.NewRequest(movement.TypeMaintenance).Equipment("E1").On(testDate).
		MaintenanceType("MT1").DefectFound("DE01").Build(), legacy)
	assert.Equal(t, "defect_found_id", fieldOf(t, movement.Validate(req, legacy)))

	req = movement.Resolve(movement.NewRequest(movement.TypeAllocation).Equipment("E1").On(testDate).
		To("cliente").OtherDefect("OUT1").Build(), legacy)
	assert.Equal(t, "other_defect_id", fieldOf(t, movement.Validate(req, legacy)))
}

func TestValidate_PoliticaSinCasa(t *testing.T) {
	empty := movement.Policy{SupportsDefectClassification: true}
	req := movement.Resolve(movement.NewRequest(movement.TypeInternalTransfer).Equipment("E1").On(testDate).OtherDefect("O").Build(), empty)
	assert.Equal(t, "destination_company_id", fieldOf(t, movement.Validate(req, empty)))
}

func TestResolve_TransferenciaInternaFuerzaCasa(t *testing.T) {
	req := movement.Resolve(movement.NewRequest(movement.TypeInternalTransfer).From("x").To("y").Build(), policy)
	assert.Equal(t, "home", req.OriginCompanyID)
	assert.Equal(t, "home", req.DestinationCompanyID)
}

// ── Exclusión mutua de defectos ──────────────────────────────────────────────

func TestBuilder_DefectoReclamadoYOtroSonExcluyentes(t *testing.T) {
	req := movement.NewRequest(movement.TypeMaintenance).OtherDefect("OUT1").DefectReported("DR01").Build()
	assert.Equal(t, "DR01", req.DefectReportedID)
	assert.Empty(t, req.OtherDefectID)

	req = movement.NewRequest(movement.TypeMaintenance).DefectReported("DR01").OtherDefect("OUT1").Build()
	assert.Equal(t, "OUT1", req.OtherDefectID)
	assert.Empty(t, req.DefectReportedID)
	assert.Equal(t, "OUT1", req.ReportedOrOther())
}

func TestBuilder_FechaSinHora(t *testing.T) {
	req := movement.NewRequest(movement.TypeEntry).On(time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)).Build()
	assert.Equal(t, testDate, req.MovementDate)
}
