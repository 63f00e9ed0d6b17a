package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/movement"
)

// Validator envoltorio de go-playground/validator que reporta los campos con su nombre JSON.
type Validator struct {
	validate *validator.Validate
}

// New crea el validador y registra las reglas propias.
// Si una regla no se registra el servidor no debe arrancar.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	if err := registerRules(v); err != nil {
		panic("registrar reglas de validación: " + err.Error())
	}
	return &Validator{validate: v}
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("movement_type", func(fl validator.FieldLevel) bool {
		_, err := movement.ParseType(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("equipment_status", func(fl validator.FieldLevel) bool {
		return entity.EquipmentStatus(fl.Field().String()).Valid()
	})
}

// FieldError primer campo que no pasó la validación.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Struct valida s y devuelve *FieldError con el primer campo inválido.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &FieldError{Field: fieldPath(fe), Message: message(fe)}
}

// fieldPath quita el nombre del struct raíz: "RegisterMovementRequest.equipment_ids[0]" -> "equipment_ids[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo requerido"
	case "email":
		return "email inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "fecha inválida, use AAAA-MM-DD"
	case "excluded_with":
		return "no puede enviarse junto con " + fe.Param()
	case "movement_type":
		return "tipo de movimiento desconocido"
	case "equipment_status":
		return "estado desconocido"
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}
