package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("datos inválidos")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autenticado")
	ErrForbidden         = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInUse             = errors.New("recurso en uso")
)

// FieldErrors agrupa errores de validación por campo (campo -> mensajes).
// Se expone tal cual al cliente HTTP como respuesta 400.
type FieldErrors map[string][]string

// NewFieldError crea un FieldErrors con un único mensaje.
func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

// Add agrega un mensaje al campo.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Merge copia los mensajes de other en f.
func (f FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		f[k] = append(f[k], msgs...)
	}
}

// OrNil devuelve nil si no hay errores; permite `return errs.OrNil()`.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], "; "))
	}
	return "validación: " + strings.Join(parts, ", ")
}

func (f FieldErrors) Unwrap() error { return ErrValidation }

// ConflictError rechazo de una operación válida en forma pero imposible en el estado actual
// (stock insuficiente, carrito vacío). Reason nombra la entidad afectada.
type ConflictError struct {
	Field  string
	Reason string
	Err    error // causa específica, ej. ErrInsufficientStock; puede ser nil
}

func (e *ConflictError) Error() string { return e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

// DetailError asocia un mensaje legible a un error centinela (ErrNotFound, ErrForbidden...).
type DetailError struct {
	Err    error
	Detail string
}

func (e *DetailError) Error() string { return e.Detail }

func (e *DetailError) Unwrap() error { return e.Err }

// NotFound devuelve ErrNotFound con un mensaje para el cliente.
func NotFound(detail string) error {
	return &DetailError{Err: ErrNotFound, Detail: detail}
}

// Unauthorized devuelve ErrUnauthorized con un mensaje para el cliente.
func Unauthorized(detail string) error {
	return &DetailError{Err: ErrUnauthorized, Detail: detail}
}

// BadRequest devuelve un error de validación sin campo concreto.
func BadRequest(detail string) error {
	return NewFieldError("detail", detail)
}
