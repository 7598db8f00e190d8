package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrIncompatibleMode    = errors.New("modo de ítem incompatible con los ítems existentes")
	ErrNoDraft             = errors.New("no hay factura en edición")
	ErrEnqueueFailed       = errors.New("no se pudo encolar la sincronización")
	ErrLimitReached        = errors.New("límite de facturas del plan alcanzado")
	ErrSequenceUnavailable = errors.New("consecutivo de factura no disponible")
	ErrPreviewBlocked      = errors.New("la factura no está lista para vista previa")
)

// FieldError error de validación atribuido a un campo concreto del formulario.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors agrupa errores por campo. Unwrap devuelve ErrInvalidInput
// para que errors.Is(err, ErrInvalidInput) funcione en los handlers.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return ErrInvalidInput }

// Has indica si algún error corresponde al campo dado.
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Add agrega un error de campo.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no hay errores (evita el nil tipado en interfaces).
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
