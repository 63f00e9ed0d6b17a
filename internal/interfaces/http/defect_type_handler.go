package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/application/usecase"
	"github.com/jhoicas/tacom-api/pkg/logger"
	"github.com/jhoicas/tacom-api/pkg/validation"
)

// DefectTypeHandler expone el catálogo de clasificaciones de defecto.
type DefectTypeHandler struct {
	uc       *usecase.DefectTypeUseCase
	validate *validation.Validator
	log      *logger.Logger
}

// NewDefectTypeHandler construye el handler.
func NewDefectTypeHandler(uc *usecase.DefectTypeUseCase, v *validation.Validator, log *logger.Logger) *DefectTypeHandler {
	return &DefectTypeHandler{uc: uc, validate: v, log: log}
}

// List godoc
// @Summary      Listar clasificaciones de defecto
// @Description  Agrupadas por categoría (reclamado, encontrado, outro). all=true incluye las inactivas.
// @Tags         defect-types
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "Incluir inactivas"
// @Success      200  {object}  dto.DefectTypeListResponse
// @Router       /api/defect-types [get]
func (h *DefectTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), !c.QueryBool("all", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener clasificación
// @Tags         defect-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la clasificación"
// @Success      200  {object}  dto.DefectTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/defect-types/{id} [get]
func (h *DefectTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clasificación no encontrada"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear clasificación
// @Tags         defect-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDefectTypeRequest  true  "code, description, category"
// @Success      201   {object}  dto.DefectTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/defect-types [post]
func (h *DefectTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDefectTypeRequest
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
