// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	localPhone   = regexp.MustCompile(`^\d{8,9}$`)
	postalCodeBR = regexp.MustCompile(`^\d{8}$`)
)

// ValidatePhone checks a Brazilian area code (11..99) and local number.
func ValidatePhone(ddd int, number string) bool {
	if ddd < 11 || ddd > 99 {
		return false
	}
	cleaned := strings.ReplaceAll(number, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return localPhone.MatchString(cleaned)
}

// ValidatePostalCode checks an unformatted CEP.
func ValidatePostalCode(cep string) bool {
	return postalCodeBR.MatchString(cep)
}

// ValidateCPF checks length and both check digits of an unformatted CPF.
func ValidateCPF(cpf string) bool {
	if len(cpf) != 11 || !digitsOnly.MatchString(cpf) {
		return false
	}
	if strings.Count(cpf, cpf[:1]) == len(cpf) {
		return false
	}
	digits := make([]int, 11)
	for i, r := range cpf {
		digits[i] = int(r - '0')
	}
	return CPFCheckDigit(digits[:9]) == digits[9] && CPFCheckDigit(digits[:10]) == digits[10]
}

// CPFCheckDigit computes the next CPF check digit for the given prefix
// (9 digits for the first, 10 for the second).
func CPFCheckDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, d := range prefix {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
