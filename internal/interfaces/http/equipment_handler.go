package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/pkg/logger"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

// EquipmentHandler maneja el alta, consulta e historial de equipos.
type EquipmentHandler struct {
	uc       *usecase.EquipmentUseCase
	validate *validation.Validator
	log      *logger.Logger
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase, v *validation.Validator, log *logger.Logger) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, validate: v, log: log}
}

// Create godoc
// @Summary      Registrar equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "serial_number, type, company_id"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener equipo
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir datos descriptivos de un equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del equipo"
// @Param        body  body  dto.UpdateEquipmentRequest  true  "type, model, region"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar equipos
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Empresa poseedora"
// @Param        status      query  string  false  "Estado"
// @Param        type        query  string  false  "Tipo"
// @Param        q           query  string  false  "Búsqueda por serie o modelo"
// @Param        out         query  string  false  "true: con fecha de salida"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.EquipmentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var in dto.EquipmentListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un equipo
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del equipo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id}/movements [get]
func (h *EquipmentHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(page); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.History(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
