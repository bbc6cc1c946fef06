// Package validate reúne las reglas de formato compartidas por los casos de uso.
// Cada función agrega mensajes a un domain.FieldErrors en lugar de cortar en el primer error.
package validate

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/pkg/rut"
)

// PhonePattern teléfono chileno: +56 seguido de 9 dígitos (el + es opcional).
const PhonePattern = `^\+?56\d{9}$`

// Mensajes reutilizados.
const (
	MsgRequired      = "Este campo es requerido."
	MsgInvalidEmail  = "Introduzca una dirección de correo electrónico válida."
	MsgInvalidPhone  = "Teléfono inválido. Formato esperado: +56912345678."
	MsgNegative      = "El valor debe ser positivo."
	MsgDecimals      = "Solo se permiten números con 0 o 2 decimales."
	MsgNegativeStock = "El stock no puede ser negativo."
	MsgMinQuantity   = "Asegúrese de que este valor es mayor o igual a 1."
	MsgInvalidDate   = "Fecha inválida. Formato esperado: AAAA-MM-DD."
	MsgDuplicate     = "Ya existe un registro con este valor."
)

// Required exige un string no vacío.
func Required(fe domain.FieldErrors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		fe.Add(field, MsgRequired)
		return false
	}
	return true
}

// Email valida formato de correo; vacío solo se acepta si no es requerido.
func Email(fe domain.FieldErrors, field, value string, required bool) {
	if value == "" {
		if required {
			fe.Add(field, MsgRequired)
		}
		return
	}
	if !govalidator.IsEmail(value) {
		fe.Add(field, MsgInvalidEmail)
	}
}

// Phone valida el formato de teléfono (requerido).
func Phone(fe domain.FieldErrors, field, value string) {
	if value == "" {
		fe.Add(field, MsgRequired)
		return
	}
	if !govalidator.Matches(value, PhonePattern) {
		fe.Add(field, MsgInvalidPhone)
	}
}

// RUT valida el RUT y copia sus mensajes al campo.
func RUT(fe domain.FieldErrors, field, value string) {
	if value == "" {
		fe.Add(field, MsgRequired)
		return
	}
	if err := rut.Validate(field, value); err != nil {
		if errs, ok := err.(domain.FieldErrors); ok {
			fe.Merge(errs)
			return
		}
		fe.Add(field, err.Error())
	}
}

// Money exige monto >= 0 con a lo más dos decimales.
func Money(fe domain.FieldErrors, field string, d decimal.Decimal) {
	if d.IsNegative() {
		fe.Add(field, MsgNegative)
		return
	}
	if !d.Equal(d.Truncate(2)) {
		fe.Add(field, MsgDecimals)
	}
}

// NonNegative exige un entero >= 0 (stock, punto de reorden).
func NonNegative(fe domain.FieldErrors, field string, n int) {
	if n < 0 {
		fe.Add(field, MsgNegativeStock)
	}
}

// Quantity exige una cantidad >= 1.
func Quantity(fe domain.FieldErrors, field string, n int) {
	if n < 1 {
		fe.Add(field, MsgMinQuantity)
	}
}

// Date parsea YYYY-MM-DD en loc. Devuelve ok=false y agrega el error si no es válida.
func Date(fe domain.FieldErrors, field, value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
	if err != nil {
		fe.Add(field, MsgInvalidDate)
		return time.Time{}, false
	}
	return t, true
}

// Today fecha de hoy (00:00) en loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
