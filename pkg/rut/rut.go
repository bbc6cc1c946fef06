// Package rut valida el Rol Único Tributario chileno (cuerpo + dígito verificador).
package rut

import (
	"strconv"
	"strings"

	"github.com/temucosoft/retail-api/internal/domain"
)

// Mensajes de validación devueltos al cliente.
const (
	MsgLength  = "El RUT debe tener entre 8 y 9 caracteres."
	MsgDigits  = "El RUT debe contener solo números (excepto el dígito verificador)."
	msgCheckDV = "Dígito verificador inválido. Debería ser: "
)

// Clean quita puntos y guion.
func Clean(value string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(value))
}

// CheckDigit calcula el dígito verificador del cuerpo (solo dígitos).
// Pesos 2..7 sobre los dígitos invertidos, reiniciando en 2 tras el 7.
func CheckDigit(body string) string {
	sum, factor := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		if factor == 7 {
			factor = 2
		} else {
			factor++
		}
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return "0"
	case 10:
		return "k"
	default:
		return strconv.Itoa(dv)
	}
}

// Validate valida el RUT con el campo indicado. Devuelve domain.FieldErrors o nil.
func Validate(field, value string) error {
	r := Clean(value)
	if len(r) < 8 || len(r) > 9 {
		return domain.NewFieldError(field, MsgLength)
	}
	body, dv := r[:len(r)-1], r[len(r)-1:]
	if !isDigits(body) {
		return domain.NewFieldError(field, MsgDigits)
	}
	expected := CheckDigit(body)
	if !strings.EqualFold(dv, expected) {
		return domain.NewFieldError(field, msgCheckDV+expected)
	}
	return nil
}

// Valid atajo booleano de Validate.
func Valid(value string) bool {
	return Validate("rut", value) == nil
}

// Format devuelve el RUT en forma XX.XXX.XXX-D a partir de un valor ya válido
// (con o sin separadores). Si el valor no es válido lo devuelve sin cambios.
func Format(value string) string {
	if !Valid(value) {
		return value
	}
	r := Clean(value)
	body, dv := r[:len(r)-1], strings.ToUpper(r[len(r)-1:])
	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
