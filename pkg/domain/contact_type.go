package domain

import dErrors "pessoas/pkg/domain-errors"

// ContactType classifies how a person can be reached. Codes match the legacy
// numeric enumeration.
type ContactType struct {
	code int
	name string
}

var (
	ContactTypeEmail  = ContactType{code: 1, name: "email"}
	ContactTypePhone  = ContactType{code: 2, name: "phone"}
	ContactTypeMobile = ContactType{code: 3, name: "mobile"}
)

var contactTypeByCode = map[int]ContactType{
	1: ContactTypeEmail,
	2: ContactTypePhone,
	3: ContactTypeMobile,
}

// ContactTypeFromCode resolves a persisted numeric code.
func ContactTypeFromCode(code int) (ContactType, bool) {
	t, ok := contactTypeByCode[code]
	return t, ok
}

// ParseContactType constructs a ContactType from external input.
func ParseContactType(s string) (ContactType, error) {
	for _, t := range contactTypeByCode {
		if t.name == s {
			return t, nil
		}
	}
	return ContactType{}, dErrors.New(dErrors.CodeInvalidInput, "invalid contact type")
}

func (t ContactType) Code() int      { return t.code }
func (t ContactType) String() string { return t.name }
func (t ContactType) IsZero() bool   { return t == ContactType{} }
