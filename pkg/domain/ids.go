// Package domain provides type-safe identifiers and value objects shared across
// the people service. Distinct ID types prevent mixing up keys at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "pessoas/pkg/domain-errors"
)

// PersonKey is the durable alternate key for a person. It is stable across
// systems and distinct from any internal storage row identifier.
type PersonKey uuid.UUID

// Distinct ID types for sub-resources - compiler prevents passing an AddressID
// where a ContactID is expected.
type (
	AddressID  uuid.UUID
	ContactID  uuid.UUID
	LocalityID uuid.UUID
)

// NewPersonKey generates a fresh alternate key for a newly created person.
func NewPersonKey() PersonKey { return PersonKey(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParsePersonKey(s string) (PersonKey, error) {
	id, err := parseUUID(s, "person key")
	return PersonKey(id), err
}

func ParseAddressID(s string) (AddressID, error) {
	id, err := parseUUID(s, "address ID")
	return AddressID(id), err
}

func ParseContactID(s string) (ContactID, error) {
	id, err := parseUUID(s, "contact ID")
	return ContactID(id), err
}

func ParseLocalityID(s string) (LocalityID, error) {
	id, err := parseUUID(s, "locality ID")
	return LocalityID(id), err
}

// String methods - for logging and debugging.

func (k PersonKey) String() string   { return uuid.UUID(k).String() }
func (id AddressID) String() string  { return uuid.UUID(id).String() }
func (id ContactID) String() string  { return uuid.UUID(id).String() }
func (id LocalityID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (k PersonKey) IsNil() bool   { return uuid.UUID(k) == uuid.Nil }
func (id AddressID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id LocalityID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshaling - IDs travel through JSON payloads as their canonical
// string form.

func (k PersonKey) MarshalText() ([]byte, error)   { return []byte(k.String()), nil }
func (id AddressID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ContactID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id LocalityID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (k *PersonKey) UnmarshalText(b []byte) error {
	parsed, err := ParsePersonKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (id *AddressID) UnmarshalText(b []byte) error {
	parsed, err := ParseAddressID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ContactID) UnmarshalText(b []byte) error {
	parsed, err := ParseContactID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *LocalityID) UnmarshalText(b []byte) error {
	parsed, err := ParseLocalityID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseUUID is the shared validation logic.
// Note: Nil UUIDs are allowed here. Use IsNil() at the service layer for
// business validation, which allows store lookups to return proper
// "not found" errors for consistency.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return id, nil
}
