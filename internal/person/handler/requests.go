package handler

import (
	"strings"

	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
)

// StatusChangeRequest optionally explains a deactivate or reactivate.
type StatusChangeRequest struct {
	Reason string `json:"reason,omitempty"`
}

// DuplicateCheckRequest asks whether an exact name (and optional birth date)
// is already registered.
type DuplicateCheckRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date,omitempty"`
}

func (r *DuplicateCheckRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
}

func (r *DuplicateCheckRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}
	if r.BirthDate != "" {
		if _, err := id.ParseBirthDate(r.BirthDate); err != nil {
			return err
		}
	}
	return nil
}

func (r *DuplicateCheckRequest) name() (models.PersonName, error) {
	return models.NewPersonName(r.FirstName, r.MiddleName, r.LastName, "")
}

func (r *DuplicateCheckRequest) birthDate() id.BirthDate {
	if r.BirthDate == "" {
		return id.BirthDate{}
	}
	bd, _ := id.ParseBirthDate(r.BirthDate)
	return bd
}

// DuplicateSearchRequest runs the fuzzy search. Threshold is optional; the
// service default applies when it is omitted.
type DuplicateSearchRequest struct {
	DuplicateCheckRequest
	Threshold *float64 `json:"threshold,omitempty"`
}
