package rut_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temucosoft/retail-api/internal/domain"
	"github.com/temucosoft/retail-api/pkg/rut"
)

func TestCheckDigit_VectoresDeReferencia(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"11111111", "1"},
		{"12345678", "5"},
		{"7654321", "6"},
		{"76086428", "5"},
		{"1000005", "k"},
		{"76123456", "0"},
		{"22222222", "2"},
		{"5126663", "3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rut.CheckDigit(tt.body), "cuerpo %s", tt.body)
	}
}

// El séptimo dígito (desde la derecha) ya usa peso 2 y el octavo peso 3.
func TestCheckDigit_LimiteDePesos(t *testing.T) {
	// 9999999: 9*(2+3+4+5+6+7+2)=9*29=261 -> 261 mod 11 = 8 -> 3
	assert.Equal(t, "3", rut.CheckDigit("9999999"))
	// 10000000: solo el 1 en la posición 8 (peso 3 tras reiniciar en 2) -> 3 mod 11 = 3 -> 8
	assert.Equal(t, "8", rut.CheckDigit("10000000"))
	// 1000000: el 1 en la posición 7 (peso 2 tras el 7) -> 2 -> 9
	assert.Equal(t, "9", rut.CheckDigit("1000000"))
}

func TestValidate_Correctos(t *testing.T) {
	for _, v := range []string{
		"11.111.111-1",
		"12345678-5",
		"7.654.321-6",
		"76.086.428-5",
		"1.000.005-K",
		"1000005k",
		"76.123.456-0",
	} {
		assert.NoError(t, rut.Validate("rut", v), v)
	}
}

func TestValidate_Errores(t *testing.T) {
	tests := []struct {
		name  string
		value string
		msg   string
	}{
		{"muy corto", "1.234-5", rut.MsgLength},
		{"muy largo", "123.456.789-0", rut.MsgLength},
		{"cuerpo con letras", "12.34A.678-5", rut.MsgDigits},
		{"dígito incorrecto", "12.345.678-9", "Dígito verificador inválido. Debería ser: 5"},
		{"k esperado", "1.000.005-1", "Dígito verificador inválido. Debería ser: k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rut.Validate("rut", tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var fe domain.FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, []string{tt.msg}, fe["rut"])
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "1.000.005-K", rut.Format("1000005k"))
	assert.Equal(t, "76.086.428-5", rut.Format("76.086.428-5"))
	assert.Equal(t, "no-es-rut", rut.Format("no-es-rut"))
}
