package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tacom-api/internal/application/auth"
	"github.com/jhoicas/tacom-api/internal/application/catalog"
	"github.com/jhoicas/tacom-api/internal/application/dto"
	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/internal/infrastructure/cache"
	"github.com/jhoicas/tacom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tacom-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/tacom-api/internal/interfaces/http"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

type testAPI struct {
	app    *fiber.App
	tokens map[string]string // rol -> "Bearer ..."
}

// newTestAPI arma la API completa sobre SQLite en memoria con la casa, un cliente,
// el socio de mantenimiento, dos clasificaciones, el equipo "eq1" y un usuario por rol.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	companyRepo := sqlite.NewCompanyRepository(db)
	equipmentRepo := sqlite.NewEquipmentRepository(db)
	movementRepo := sqlite.NewMovementRepository(db)
	defectRepo := sqlite.NewDefectTypeRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	now := time.Now().UTC()
	for _, c := range []entity.Company{
		{ID: "home", Name: "TACOM Matriz", Region: "SP"},
		{ID: "cliente", Name: "Transportes Cliente", Region: "PR"},
		{ID: "partner", Name: "Assistência Técnica"},
	} {
		c := c
		c.Active, c.CreatedAt, c.UpdatedAt = true, now, now
		require.NoError(t, companyRepo.Create(ctx, &c))
	}
	require.NoError(t, defectRepo.Create(ctx, &entity.DefectType{ID: "DR01", Code: "DR01", Description: "Não liga", Category: entity.DefectReported, Active: true, CreatedAt: now}))
	require.NoError(t, defectRepo.Create(ctx, &entity.DefectType{ID: "OUT1", Code: "OUT1", Description: "Outro", Category: entity.DefectOther, Active: true, CreatedAt: now}))
	require.NoError(t, equipmentRepo.Create(ctx, &entity.Equipment{
		ID: "eq1", SerialNumber: "SN-001", Type: "rastreador", CompanyID: "home",
		EntryDate: engine.DateOnly(now), Status: entity.StatusAvailable, CreatedAt: now, UpdatedAt: now,
	}))

	policy := engine.Policy{
		HomeCompanyID:                "home",
		MaintenancePartnerID:         "partner",
		HomeFamily:                   []string{"home"},
		SupportsDefectClassification: true,
	}
	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	companies := catalog.NewCompanies(companyRepo, memCache, time.Minute, nil)
	defects := catalog.NewDefects(defectRepo, memCache, time.Minute, nil)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	}).WithCost(bcrypt.MinCost)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo),
		CompanyUC:        usecase.NewCompanyUseCase(companyRepo, companies, policy),
		EquipmentUC:      usecase.NewEquipmentUseCase(equipmentRepo, movementRepo, companies),
		DefectTypeUC:     usecase.NewDefectTypeUseCase(defects),
		RegisterMovement: appmovement.NewRegisterMovementUseCase(sqlite.NewTxRunner(db), equipmentRepo, companies, defects, policy, appmovement.BatchAtomic, nil),
		MovementQuery:    appmovement.NewQueryUseCase(movementRepo, policy),
		MovementSlip:     appmovement.NewSlipUseCase(movementRepo, equipmentRepo, companies, defects, pdf.NewMarotoSlipGenerator("TACOM")),
		Validator:        validation.New(),
		JWTSecret:        testJWTSecret,
	})

	api := &testAPI{app: app, tokens: map[string]string{}}
	for _, role := range []string{entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer} {
		email := role + "@tacom.test"
		resp := api.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
			Email: email, Password: "segredo123", CompanyID: "home", Name: "Usuario " + role, Role: role,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		var login dto.LoginResponse
		resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "segredo123"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &login)
		api.tokens[role] = "Bearer " + login.Token
	}
	return api
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@tacom.test", Password: "errada123"})
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", e.Code)
}

func TestRegister_ValidacionDevuelveCampo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "nuevo@tacom.test", Password: "corta", CompanyID: "home", Name: "N"})
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "password", e.Field)

	resp = api.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "admin@tacom.test", Password: "segredo123", CompanyID: "home", Name: "Otro"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUsersMe(t *testing.T) {
	api := newTestAPI(t)

	var me dto.UserResponse
	resp := api.do(t, http.MethodGet, "/api/users/me", api.tokens[entity.RoleOperator], nil)
	decode(t, resp, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "operador@tacom.test", me.Email)
	assert.Equal(t, entity.RoleOperator, me.Role)
}

func TestMovements_EnvioAManutencao(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/movements", api.tokens[entity.RoleOperator], dto.RegisterMovementRequest{
		Type:             "ENVIO_MANUTENCAO",
		EquipmentIDs:     []string{"eq1"},
		MovementDate:     "2024-05-10",
		OriginCompanyID:  "home",
		DefectReportedID: "DR01",
		Notes:            "não liga",
	})
	var out dto.BatchResponse
	decode(t, resp, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, out.Movements, 1)
	m := out.Movements[0]
	assert.Equal(t, "envio_manutencao", m.Type)
	assert.Equal(t, "home", m.OriginCompanyID)
	assert.Equal(t, "partner", m.DestinationCompanyID)
	assert.Equal(t, "DR01", m.DefectReportedID)
	assert.Equal(t, "2024-05-10", m.MovementDate)
	assert.Equal(t, "Usuario operador", m.ResponsibleUser)

	require.Len(t, out.Equipment, 1)
	e := out.Equipment[0]
	assert.Equal(t, "partner", e.CompanyID)
	assert.Equal(t, string(entity.StatusAwaitingMaintenance), e.Status)
	assert.True(t, e.InMaintenance)

	var hist dto.MovementListResponse
	resp = api.do(t, http.MethodGet, "/api/equipment/eq1/movements", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &hist)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, 1, hist.Page.Total)

	var eq dto.EquipmentResponse
	resp = api.do(t, http.MethodGet, "/api/equipment/eq1", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &eq)
	assert.Equal(t, string(entity.StatusAwaitingMaintenance), eq.Status)

	resp = api.do(t, http.MethodGet, "/api/movements/"+m.ID+"/slip", api.tokens[entity.RoleViewer], nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = api.do(t, http.MethodGet, "/api/movements/nada/slip", api.tokens[entity.RoleViewer], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovements_SaidaSinDestino(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/movements", api.tokens[entity.RoleAdmin], dto.RegisterMovementRequest{
		Type:         "saida",
		EquipmentIDs: []string{"eq1"},
		MovementDate: "2024-05-10",
	})
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "destination_company_id", e.Field)

	var eq dto.EquipmentResponse
	resp = api.do(t, http.MethodGet, "/api/equipment/eq1", api.tokens[entity.RoleAdmin], nil)
	decode(t, resp, &eq)
	assert.Equal(t, "home", eq.CompanyID, "la validación fallida no escribe nada")
	assert.Nil(t, eq.ExitDate)
}

func TestMovements_DefectoReclamadoYOtroJuntos(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/movements", api.tokens[entity.RoleAdmin], dto.RegisterMovementRequest{
		Type:             "manutencao",
		EquipmentIDs:     []string{"eq1"},
		MovementDate:     "2024-05-10",
		DefectReportedID: "DR01",
		OtherDefectID:    "OUT1",
	})
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "other_defect_id", e.Field)
}

func TestMovements_ConsultaNoPuedeRegistrar(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/movements", api.tokens[entity.RoleViewer], dto.RegisterMovementRequest{
		Type:                 "saida",
		EquipmentIDs:         []string{"eq1"},
		MovementDate:         "2024-05-10",
		DestinationCompanyID: "cliente",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMovements_ListYReglas(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/movements", api.tokens[entity.RoleAdmin], dto.RegisterMovementRequest{
		Type:                 "saida",
		EquipmentIDs:         []string{"eq1"},
		MovementDate:         "2024-05-10",
		DestinationCompanyID: "cliente",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var list dto.MovementListResponse
	resp = api.do(t, http.MethodGet, "/api/movements?company_id=cliente&from=2024-05-01&to=2024-05-31", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "saida", list.Items[0].Type)

	resp = api.do(t, http.MethodGet, "/api/movements?from=2024-05-31&to=2024-05-01", api.tokens[entity.RoleViewer], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var rules engine.Rules
	resp = api.do(t, http.MethodGet, "/api/movements/rules/transferencia_interna", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &rules)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, rules.DestinationLocked)
	assert.Equal(t, "home", rules.DestinationCompanyID)

	resp = api.do(t, http.MethodGet, "/api/movements/rules/venda", api.tokens[entity.RoleViewer], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompanies_NombreDuplicadoYCasa(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/companies", api.tokens[entity.RoleAdmin], dto.CreateCompanyRequest{Name: "  transportes   CLIENTE "})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/companies", api.tokens[entity.RoleOperator], dto.CreateCompanyRequest{Name: "Nueva"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var c dto.CompanyResponse
	resp = api.do(t, http.MethodGet, "/api/companies/home", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &c)
	assert.True(t, c.IsHome)

	inactive := false
	resp = api.do(t, http.MethodPut, "/api/companies/home", api.tokens[entity.RoleAdmin], dto.UpdateCompanyRequest{Active: &inactive})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/companies/nada", api.tokens[entity.RoleViewer], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEquipment_CreateYList(t *testing.T) {
	api := newTestAPI(t)

	var created dto.EquipmentResponse
	resp := api.do(t, http.MethodPost, "/api/equipment", api.tokens[entity.RoleOperator], dto.CreateEquipmentRequest{
		SerialNumber: "SN-002", Type: "camera", CompanyID: "cliente",
	})
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, string(entity.StatusAvailable), created.Status)
	assert.Equal(t, "PR", created.Region)

	resp = api.do(t, http.MethodPost, "/api/equipment", api.tokens[entity.RoleOperator], dto.CreateEquipmentRequest{
		SerialNumber: "SN-002", Type: "camera", CompanyID: "home",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var list dto.EquipmentListResponse
	resp = api.do(t, http.MethodGet, "/api/equipment?company_id=cliente", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "SN-002", list.Items[0].SerialNumber)

	resp = api.do(t, http.MethodGet, "/api/equipment?out=quizas", api.tokens[entity.RoleViewer], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDefectTypes_ListYCreate(t *testing.T) {
	api := newTestAPI(t)

	var created dto.DefectTypeResponse
	resp := api.do(t, http.MethodPost, "/api/defect-types", api.tokens[entity.RoleAdmin], dto.CreateDefectTypeRequest{Code: "de05", Description: "Antena rompida"})
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "DE05", created.Code)
	assert.Equal(t, string(entity.DefectFound), created.Category)

	var list dto.DefectTypeListResponse
	resp = api.do(t, http.MethodGet, "/api/defect-types", api.tokens[entity.RoleViewer], nil)
	decode(t, resp, &list)
	assert.Len(t, list.Items, 3)
	assert.Len(t, list.ByCategory[string(entity.DefectFound)], 1)

	resp = api.do(t, http.MethodPost, "/api/defect-types", api.tokens[entity.RoleOperator], dto.CreateDefectTypeRequest{Code: "DR09", Description: "x"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
