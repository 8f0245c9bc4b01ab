// Package models defines the contact points attached to a person.
package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
)

// Contact is a way to reach a person: an email address or a phone number.
type Contact struct {
	ID        id.ContactID
	PersonKey id.PersonKey
	Type      id.ContactType
	Value     string
	CreatedAt time.Time
}

// NewContact validates and constructs a Contact. The value is normalized
// according to its type before storage.
func NewContact(personKey id.PersonKey, contactType id.ContactType, value string, now time.Time) (*Contact, error) {
	if personKey.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "person key is required")
	}
	normalized, err := NormalizeValue(contactType, value)
	if err != nil {
		return nil, err
	}
	return &Contact{
		ID:        id.ContactID(uuid.New()),
		PersonKey: personKey,
		Type:      contactType,
		Value:     normalized,
		CreatedAt: now,
	}, nil
}

// NormalizeValue canonicalizes a contact value for its type. Emails are
// lowercased; phone numbers keep digits only.
func NormalizeValue(contactType id.ContactType, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch contactType {
	case id.ContactTypeEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Name != "" {
			return "", dErrors.New(dErrors.CodeValidation, "invalid email address")
		}
		return strings.ToLower(addr.Address), nil
	case id.ContactTypePhone, id.ContactTypeMobile:
		digits := keepDigits(value)
		if len(digits) < 10 || len(digits) > 11 {
			return "", dErrors.New(dErrors.CodeValidation, "phone number must have 10 or 11 digits")
		}
		return digits, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid contact type")
	}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Clone returns a copy so stores can hand out values without aliasing.
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// AddContactRequest is the wire shape for attaching a contact.
type AddContactRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (r *AddContactRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.Value = strings.TrimSpace(r.Value)
}

func (r *AddContactRequest) Validate() error {
	contactType, err := id.ParseContactType(r.Type)
	if err != nil {
		return err
	}
	if _, err := NormalizeValue(contactType, r.Value); err != nil {
		return err
	}
	return nil
}
