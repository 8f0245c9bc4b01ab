package domain

import dErrors "pessoas/pkg/domain-errors"

// Gender is an optional demographic attribute on a person. The zero value
// means "not informed" and is always accepted.
type Gender struct {
	code int
	name string
}

var (
	GenderFemale       = Gender{code: 1, name: "female"}
	GenderMale         = Gender{code: 2, name: "male"}
	GenderNonBinary    = Gender{code: 3, name: "non_binary"}
	GenderNotDisclosed = Gender{code: 9, name: "not_disclosed"}
)

var genderByCode = map[int]Gender{
	1: GenderFemale,
	2: GenderMale,
	3: GenderNonBinary,
	9: GenderNotDisclosed,
}

// GenderFromCode resolves a persisted numeric code.
func GenderFromCode(code int) (Gender, bool) {
	g, ok := genderByCode[code]
	return g, ok
}

// ParseGender constructs a Gender from external input. Empty input yields the
// zero value without error since the attribute is optional.
func ParseGender(s string) (Gender, error) {
	if s == "" {
		return Gender{}, nil
	}
	for _, g := range genderByCode {
		if g.name == s {
			return g, nil
		}
	}
	return Gender{}, dErrors.New(dErrors.CodeInvalidInput, "invalid gender")
}

func (g Gender) Code() int      { return g.code }
func (g Gender) String() string { return g.name }
func (g Gender) IsZero() bool   { return g == Gender{} }
