package domain

import dErrors "pessoas/pkg/domain-errors"

// IdentifierType labels which external system an identifier value came from.
// Values of external identifiers are opaque tokens and compared case-sensitively.
type IdentifierType string

const (
	IdentifierTypeCPF      IdentifierType = "cpf"
	IdentifierTypeCNPJ     IdentifierType = "cnpj"
	IdentifierTypeRG       IdentifierType = "rg"
	IdentifierTypeCNS      IdentifierType = "cns"
	IdentifierTypePassport IdentifierType = "passport"
	IdentifierTypeLegacy   IdentifierType = "legacy_system"
)

// validIdentifierTypes is the single source of truth for supported types.
var validIdentifierTypes = map[IdentifierType]bool{
	IdentifierTypeCPF:      true,
	IdentifierTypeCNPJ:     true,
	IdentifierTypeRG:       true,
	IdentifierTypeCNS:      true,
	IdentifierTypePassport: true,
	IdentifierTypeLegacy:   true,
}

// ParseIdentifierType constructs an IdentifierType from external input.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses the allowlist.
func ParseIdentifierType(s string) (IdentifierType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identifier type cannot be empty")
	}
	t := IdentifierType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid identifier type")
	}
	return t, nil
}

// IsValid checks if the identifier type is one of the supported enum values.
func (t IdentifierType) IsValid() bool {
	return validIdentifierTypes[t]
}

// String returns the string representation of the type.
func (t IdentifierType) String() string {
	return string(t)
}
