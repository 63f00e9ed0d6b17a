package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPersistence        = errors.New("fallo de persistencia")
)

// ValidationError indica el campo faltante o inválido de una solicitud.
// Se reporta antes de cualquier escritura.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError reporta un fallo del repositorio durante el procesamiento de un lote.
// Committed lista los equipos cuyo movimiento quedó persistido; Pending los que no se alcanzaron.
type PersistenceError struct {
	EquipmentID string
	Committed   []string
	Pending     []string
	Err         error
}

func (e *PersistenceError) Error() string {
	var b strings.Builder
	if e.EquipmentID == "" {
		fmt.Fprintf(&b, "persistir lote de movimientos: %v", e.Err)
	} else {
		fmt.Fprintf(&b, "persistir movimiento del equipo %s: %v", e.EquipmentID, e.Err)
	}
	fmt.Fprintf(&b, " (confirmados=%d, pendientes=%d)", len(e.Committed), len(e.Pending))
	return b.String()
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
