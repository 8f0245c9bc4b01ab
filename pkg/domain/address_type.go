package domain

import dErrors "pessoas/pkg/domain-errors"

// AddressType classifies a person's address. Codes match the legacy numeric
// enumeration so persisted rows remain readable across systems.
type AddressType struct {
	code int
	name string
}

var (
	AddressTypeResidential    = AddressType{code: 1, name: "residential"}
	AddressTypeCommercial     = AddressType{code: 2, name: "commercial"}
	AddressTypeRural          = AddressType{code: 3, name: "rural"}
	AddressTypeCorrespondence = AddressType{code: 4, name: "correspondence"}
)

var addressTypeByCode = map[int]AddressType{
	1: AddressTypeResidential,
	2: AddressTypeCommercial,
	3: AddressTypeRural,
	4: AddressTypeCorrespondence,
}

// AddressTypeFromCode resolves a persisted numeric code.
func AddressTypeFromCode(code int) (AddressType, bool) {
	t, ok := addressTypeByCode[code]
	return t, ok
}

// ParseAddressType constructs an AddressType from external input.
func ParseAddressType(s string) (AddressType, error) {
	for _, t := range addressTypeByCode {
		if t.name == s {
			return t, nil
		}
	}
	return AddressType{}, dErrors.New(dErrors.CodeInvalidInput, "invalid address type")
}

func (t AddressType) Code() int      { return t.code }
func (t AddressType) String() string { return t.name }
func (t AddressType) IsZero() bool   { return t == AddressType{} }
