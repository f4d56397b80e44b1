// Package colombia reúne validaciones y catálogos de uso nacional: dígito de
// verificación del NIT y tablas de referencia de RIPS para pacientes.
package colombia

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidNIT NIT mal formado o con dígito de verificación incorrecto.
var ErrInvalidNIT = errors.New("NIT inválido")

// pesos del módulo 11 de la DIAN, aplicados de izquierda a derecha a los 9 dígitos base.
var nitWeights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// VerificationDigit calcula el dígito de verificación de un NIT de 9 dígitos base.
// Se ignoran puntos, guiones y espacios.
func VerificationDigit(nit string) (byte, error) {
	digits := extractDigits(nit)
	if len(digits) < 9 {
		return 0, fmt.Errorf("%w: se requieren 9 dígitos base, se encontraron %d", ErrInvalidNIT, len(digits))
	}
	return checkDigit(digits[:9]), nil
}

// ValidateNIT acepta "900123456-8", "900.123.456-8" o "9001234568".
func ValidateNIT(nit string) error {
	digits := extractDigits(nit)
	if len(digits) != 10 {
		return fmt.Errorf("%w: debe tener 9 dígitos más el de verificación, se recibieron %d", ErrInvalidNIT, len(digits))
	}
	if want := checkDigit(digits[:9]); digits[9] != want {
		return fmt.Errorf("%w: dígito de verificación esperado %c, recibido %c", ErrInvalidNIT, want, digits[9])
	}
	return nil
}

// FormatNIT devuelve el NIT como "900123456-8".
func FormatNIT(nit string) (string, error) {
	if err := ValidateNIT(nit); err != nil {
		return "", err
	}
	d := extractDigits(nit)
	return string(d[:9]) + "-" + string(d[9]), nil
}

func checkDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * nitWeights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
