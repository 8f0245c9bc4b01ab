package domain

import dErrors "pessoas/pkg/domain-errors"

// LocalityType is the level of a locality in the geographic hierarchy.
type LocalityType struct {
	code int
	name string
}

var (
	LocalityTypeCountry  = LocalityType{code: 1, name: "country"}
	LocalityTypeState    = LocalityType{code: 2, name: "state"}
	LocalityTypeCity     = LocalityType{code: 3, name: "city"}
	LocalityTypeDistrict = LocalityType{code: 4, name: "district"}
)

var localityTypeByCode = map[int]LocalityType{
	1: LocalityTypeCountry,
	2: LocalityTypeState,
	3: LocalityTypeCity,
	4: LocalityTypeDistrict,
}

// LocalityTypeFromCode resolves a persisted numeric code.
func LocalityTypeFromCode(code int) (LocalityType, bool) {
	t, ok := localityTypeByCode[code]
	return t, ok
}

// ParseLocalityType constructs a LocalityType from external input.
func ParseLocalityType(s string) (LocalityType, error) {
	for _, t := range localityTypeByCode {
		if t.name == s {
			return t, nil
		}
	}
	return LocalityType{}, dErrors.New(dErrors.CodeInvalidInput, "invalid locality type")
}

func (t LocalityType) Code() int      { return t.code }
func (t LocalityType) String() string { return t.name }
func (t LocalityType) IsZero() bool   { return t == LocalityType{} }

func (t LocalityType) MarshalText() ([]byte, error) { return []byte(t.name), nil }

func (t *LocalityType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = LocalityType{}
		return nil
	}
	parsed, err := ParseLocalityType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
