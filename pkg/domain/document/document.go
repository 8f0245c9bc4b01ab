// Package document validates Brazilian registry documents (CPF, CNPJ) by their
// mod-11 check digits. Inputs may carry the usual punctuation; only digits count.
package document

import (
	"strings"

	dErrors "pessoas/pkg/domain-errors"
)

// ValidateCPF checks an 11-digit CPF. Formatting characters (".", "-") are
// stripped before validation.
func ValidateCPF(value string) error {
	digits := onlyDigits(value)
	if len(digits) != 11 {
		return dErrors.New(dErrors.CodeInvalidDocument, "CPF must have 11 digits")
	}
	if allSameDigit(digits) {
		// Sequences like "000.000.000-00" pass the checksum but are reserved.
		return dErrors.New(dErrors.CodeInvalidDocument, "CPF digits cannot all repeat")
	}
	if checkDigit(digits[:9], 10) != int(digits[9]-'0') ||
		checkDigit(digits[:10], 11) != int(digits[10]-'0') {
		return dErrors.New(dErrors.CodeInvalidDocument, "CPF checksum failed")
	}
	return nil
}

// ValidateCNPJ checks a 14-digit CNPJ. Formatting characters (".", "/", "-")
// are stripped before validation.
func ValidateCNPJ(value string) error {
	digits := onlyDigits(value)
	if len(digits) != 14 {
		return dErrors.New(dErrors.CodeInvalidDocument, "CNPJ must have 14 digits")
	}
	if allSameDigit(digits) {
		return dErrors.New(dErrors.CodeInvalidDocument, "CNPJ digits cannot all repeat")
	}
	if cnpjCheckDigit(digits[:12]) != int(digits[12]-'0') ||
		cnpjCheckDigit(digits[:13]) != int(digits[13]-'0') {
		return dErrors.New(dErrors.CodeInvalidDocument, "CNPJ checksum failed")
	}
	return nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a CPF verification digit: weights descend from start
// down to 2, the weighted sum is taken mod 11, and remainders below 2 map to 0.
func checkDigit(digits string, start int) int {
	sum := 0
	for i, w := 0, start; i < len(digits); i, w = i+1, w-1 {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// cnpjCheckDigit computes a CNPJ verification digit with the cyclic 2..9 weights
// applied right to left.
func cnpjCheckDigit(digits string) int {
	weight := 2
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
