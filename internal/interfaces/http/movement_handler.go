package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/pkg/logger"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

// MovementHandler registra y consulta movimientos de equipos.
type MovementHandler struct {
	register *movement.RegisterMovementUseCase
	query    *movement.QueryUseCase
	slip     *movement.SlipUseCase
	validate *validation.Validator
	log      *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *movement.RegisterMovementUseCase, query *movement.QueryUseCase, slip *movement.SlipUseCase, v *validation.Validator, log *logger.Logger) *MovementHandler {
	return &MovementHandler{register: register, query: query, slip: slip, validate: v, log: log}
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  Aplica un movimiento a uno o más equipos. Cada equipo recibe su registro de auditoría
//
//	y la actualización de estado, poseedor y fechas que corresponda al tipo.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "movement_type, equipment_ids, movement_date y campos según el tipo"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.BatchErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.register.RegisterFromRequest(c.UserContext(), GetUserName(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        equipment_id   query  string  false  "Equipo"
// @Param        company_id     query  string  false  "Empresa origen o destino"
// @Param        movement_type  query  string  false  "Tipo"
// @Param        from           query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to             query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Rules godoc
// @Summary      Reglas de formulario por tipo de movimiento
// @Description  Campos requeridos, destino u origen fijados y clasificaciones aceptadas.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "Tipo de movimiento"
// @Success      200   {object}  movement.Rules
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/rules/{type} [get]
func (h *MovementHandler) Rules(c *fiber.Ctx) error {
	out, err := h.query.Rules(c.Params("type"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Slip godoc
// @Summary      Guía de movimentação en PDF
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/slip [get]
func (h *MovementHandler) Slip(c *fiber.Ctx) error {
	doc, name, err := h.slip.Generate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	return c.Send(doc)
}
