package domain

import dErrors "pessoas/pkg/domain-errors"

// PersonStatus is the lifecycle state of a person aggregate. People are never
// physically deleted; the status carries the soft lifecycle.
//
// Each status pairs a stable numeric code (persisted) with a name (wire/API).
type PersonStatus struct {
	code int
	name string
}

var (
	PersonStatusActive   = PersonStatus{code: 1, name: "active"}
	PersonStatusInactive = PersonStatus{code: 2, name: "inactive"}
	PersonStatusMerged   = PersonStatus{code: 3, name: "merged"}
)

// personStatusByCode is the single source of truth for valid statuses.
var personStatusByCode = map[int]PersonStatus{
	1: PersonStatusActive,
	2: PersonStatusInactive,
	3: PersonStatusMerged,
}

// PersonStatusFromCode resolves a persisted numeric code.
// The second return is false for unknown codes.
func PersonStatusFromCode(code int) (PersonStatus, bool) {
	s, ok := personStatusByCode[code]
	return s, ok
}

// ParsePersonStatus constructs a status from external input.
func ParsePersonStatus(s string) (PersonStatus, error) {
	for _, st := range personStatusByCode {
		if st.name == s {
			return st, nil
		}
	}
	return PersonStatus{}, dErrors.New(dErrors.CodeInvalidInput, "invalid person status")
}

func (s PersonStatus) Code() int      { return s.code }
func (s PersonStatus) String() string { return s.name }
func (s PersonStatus) IsZero() bool   { return s == PersonStatus{} }
