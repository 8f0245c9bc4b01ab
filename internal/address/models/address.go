// Package models defines the address attached to a person.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
)

// Address is a place where a person can be found or reached by mail. A person
// may hold several, distinguished by type.
type Address struct {
	ID         id.AddressID
	PersonKey  id.PersonKey
	Type       id.AddressType
	Street     string
	Number     string
	Complement string
	District   string
	LocalityID id.LocalityID
	PostalCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAddress validates and constructs an Address.
func NewAddress(personKey id.PersonKey, addrType id.AddressType, street, number, complement, district string, localityID id.LocalityID, postalCode string, now time.Time) (*Address, error) {
	if personKey.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}
	if addrType.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "address type is required")
	}
	street = strings.TrimSpace(street)
	if street == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "street is required")
	}
	cep, err := NormalizeCEP(postalCode)
	if err != nil {
		return nil, err
	}
	return &Address{
		ID:         id.AddressID(uuid.New()),
		PersonKey:  personKey,
		Type:       addrType,
		Street:     street,
		Number:     strings.TrimSpace(number),
		Complement: strings.TrimSpace(complement),
		District:   strings.TrimSpace(district),
		LocalityID: localityID,
		PostalCode: cep,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NormalizeCEP strips the conventional hyphen and validates the 8-digit
// Brazilian postal code.
func NormalizeCEP(postalCode string) (string, error) {
	cep := strings.ReplaceAll(strings.TrimSpace(postalCode), "-", "")
	if len(cep) != 8 {
		return "", dErrors.New(dErrors.CodeValidation, "postal code must have 8 digits")
	}
	for _, c := range cep {
		if c < '0' || c > '9' {
			return "", dErrors.New(dErrors.CodeValidation, "postal code must be numeric")
		}
	}
	return cep, nil
}

// Clone returns a copy so stores can hand out values without aliasing.
func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// AddAddressRequest is the wire shape for attaching an address.
type AddAddressRequest struct {
	Type       string `json:"type"`
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	LocalityID string `json:"locality_id,omitempty"`
	PostalCode string `json:"postal_code"`
}

func (r *AddAddressRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.Street = strings.TrimSpace(r.Street)
	r.Number = strings.TrimSpace(r.Number)
	r.Complement = strings.TrimSpace(r.Complement)
	r.District = strings.TrimSpace(r.District)
	r.LocalityID = strings.TrimSpace(r.LocalityID)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
}

func (r *AddAddressRequest) Validate() error {
	if _, err := id.ParseAddressType(r.Type); err != nil {
		return err
	}
	if r.Street == "" {
		return dErrors.New(dErrors.CodeValidation, "street is required")
	}
	if _, err := NormalizeCEP(r.PostalCode); err != nil {
		return err
	}
	if r.LocalityID != "" {
		if _, err := id.ParseLocalityID(r.LocalityID); err != nil {
			return err
		}
	}
	return nil
}

// UpdateAddressRequest carries the mutable fields of an address.
type UpdateAddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	LocalityID string `json:"locality_id,omitempty"`
	PostalCode string `json:"postal_code"`
}

func (r *UpdateAddressRequest) Normalize() {
	r.Street = strings.TrimSpace(r.Street)
	r.Number = strings.TrimSpace(r.Number)
	r.Complement = strings.TrimSpace(r.Complement)
	r.District = strings.TrimSpace(r.District)
	r.LocalityID = strings.TrimSpace(r.LocalityID)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
}

func (r *UpdateAddressRequest) Validate() error {
	if r.Street == "" {
		return dErrors.New(dErrors.CodeValidation, "street is required")
	}
	if _, err := NormalizeCEP(r.PostalCode); err != nil {
		return err
	}
	if r.LocalityID != "" {
		if _, err := id.ParseLocalityID(r.LocalityID); err != nil {
			return err
		}
	}
	return nil
}
