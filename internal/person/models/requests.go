package models

import (
	"strings"

	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
)

// CreatePersonRequest is the wire shape for person creation.
type CreatePersonRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	SocialName string `json:"social_name,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	Gender     string `json:"gender,omitempty"`
	// AllowSimilar lets the caller proceed past non-exact duplicates. Exact
	// duplicates always block.
	AllowSimilar bool `json:"allow_similar,omitempty"`
}

// Normalize trims surrounding whitespace from all name components.
func (r *CreatePersonRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.SocialName = strings.TrimSpace(r.SocialName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Gender = strings.TrimSpace(r.Gender)
}

// Validate checks required fields before the service layer sees the request.
func (r *CreatePersonRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}
	if r.BirthDate != "" {
		if _, err := id.ParseBirthDate(r.BirthDate); err != nil {
			return err
		}
	}
	if _, err := id.ParseGender(r.Gender); err != nil {
		return err
	}
	return nil
}

// Name builds the validated PersonName from the request.
func (r *CreatePersonRequest) Name() (PersonName, error) {
	return NewPersonName(r.FirstName, r.MiddleName, r.LastName, r.SocialName)
}

// RenamePersonRequest is the wire shape for renaming a person.
type RenamePersonRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	SocialName string `json:"social_name,omitempty"`
}

func (r *RenamePersonRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.SocialName = strings.TrimSpace(r.SocialName)
}

func (r *RenamePersonRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}
	return nil
}

func (r *RenamePersonRequest) Name() (PersonName, error) {
	return NewPersonName(r.FirstName, r.MiddleName, r.LastName, r.SocialName)
}

// AddIdentifierRequest attaches an external identifier to a person.
type AddIdentifierRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (r *AddIdentifierRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	// Value is intentionally left untouched: external IDs are opaque tokens.
}

func (r *AddIdentifierRequest) Validate() error {
	if _, err := id.ParseIdentifierType(r.Type); err != nil {
		return err
	}
	if r.Value == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "identifier value cannot be empty")
	}
	return nil
}

// MergePersonRequest merges the person in the URL into the target.
type MergePersonRequest struct {
	TargetKey string `json:"target_key"`
	Reason    string `json:"reason,omitempty"`
}

func (r *MergePersonRequest) Normalize() {
	r.TargetKey = strings.TrimSpace(r.TargetKey)
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *MergePersonRequest) Validate() error {
	if _, err := id.ParsePersonKey(r.TargetKey); err != nil {
		return err
	}
	return nil
}
