// Package taxid valida identificadores fiscales de empresas.
package taxid

import (
	"fmt"
	"unicode"
)

// pesos del cálculo de los dígitos verificadores del CNPJ (módulo 11).
var (
	cnpjWeights1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeCNPJ deja sólo los dígitos: "12.345.678/0001-95" -> "12345678000195".
func NormalizeCNPJ(s string) string {
	return string(extractDigits(s))
}

// ValidateCNPJ verifica longitud y dígitos verificadores de un CNPJ con o sin máscara.
func ValidateCNPJ(s string) error {
	digits := extractDigits(s)
	if len(digits) != 14 {
		return fmt.Errorf("taxid: CNPJ debe tener 14 dígitos, se encontraron %d", len(digits))
	}
	if allSame(digits) {
		return fmt.Errorf("taxid: CNPJ inválido")
	}
	d1 := checkDigit(digits[:12], cnpjWeights1[:])
	d2 := checkDigit(append(append([]byte{}, digits[:12]...), d1), cnpjWeights2[:])
	if digits[12] != d1 || digits[13] != d2 {
		return fmt.Errorf("taxid: dígitos verificadores del CNPJ inválidos: esperado %c%c, recibido %c%c", d1, d2, digits[12], digits[13])
	}
	return nil
}

func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allSame(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}
