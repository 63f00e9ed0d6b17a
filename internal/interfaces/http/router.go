package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tacom-api/internal/application/auth"
	"github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/pkg/logger"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	CompanyUC        *usecase.CompanyUseCase
	EquipmentUC      *usecase.EquipmentUseCase
	DefectTypeUC     *usecase.DefectTypeUseCase
	RegisterMovement *movement.RegisterMovementUseCase
	MovementQuery    *movement.QueryUseCase
	MovementSlip     *movement.SlipUseCase
	Validator        *validation.Validator
	Log              *logger.Logger
	JWTSecret        string
	RateLimitRPS     float64
	RateLimitBurst   int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	v, log := deps.Validator, deps.Log.Component("http")

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, v, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	admins := RequireRole(entity.RoleAdmin)

	userHandler := NewUserHandler(deps.UserUC, log)
	protected.Get("/users/me", userHandler.Me)

	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.UserUC, v, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", admins, companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", admins, companyHandler.Update)
	companies.Get("/:id/users", admins, companyHandler.ListUsers)

	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, v, log)
	equipment.Get("/", equipmentHandler.List)
	equipment.Post("/", writers, equipmentHandler.Create)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", writers, equipmentHandler.Update)
	equipment.Get("/:id/movements", equipmentHandler.History)

	defects := protected.Group("/defect-types")
	defectHandler := NewDefectTypeHandler(deps.DefectTypeUC, v, log)
	defects.Get("/", defectHandler.List)
	defects.Post("/", admins, defectHandler.Create)
	defects.Get("/:id", defectHandler.GetByID)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQuery, deps.MovementSlip, v, log)
	movements.Post("/", writers, RateLimit(deps.RateLimitRPS, deps.RateLimitBurst), movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/rules/:type", movementHandler.Rules)
	movements.Get("/:id/slip", movementHandler.Slip)
}
