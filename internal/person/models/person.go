package models

import (
	"strings"
	"time"

	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	pstrings "pessoas/pkg/platform/strings"
)

// PersonName is the civil name of a person. Treated as an immutable value:
// construct via NewPersonName, never mutate fields after construction.
type PersonName struct {
	First  string
	Middle string
	Last   string
	// Social is the name the person actually goes by, when it differs from
	// the civil name. Optional.
	Social string
}

// NewPersonName validates and constructs a PersonName. First and last name are
// required; middle and social names are optional.
func NewPersonName(first, middle, last, social string) (PersonName, error) {
	n := PersonName{
		First:  strings.TrimSpace(first),
		Middle: strings.TrimSpace(middle),
		Last:   strings.TrimSpace(last),
		Social: strings.TrimSpace(social),
	}
	if n.First == "" || n.Last == "" {
		return PersonName{}, dErrors.New(dErrors.CodeValidation, "first and last name are required")
	}
	return n, nil
}

// Full returns the complete civil name with single spaces between components.
func (n PersonName) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Normalized returns the comparison key for the full name: lowercased,
// whitespace-collapsed, diacritic-folded. Stores index this value.
func (n PersonName) Normalized() string {
	return pstrings.NormalizeName(n.Full())
}

// IsZero reports whether the name was never constructed.
func (n PersonName) IsZero() bool { return n.First == "" && n.Last == "" }

// ExternalIdentifier references the same person in an external system.
// Values are opaque tokens and compared case-sensitively.
type ExternalIdentifier struct {
	Type  id.IdentifierType
	Value string
}

// Person is the aggregate root of the people domain. It is identified by a
// durable alternate key and never physically deleted; lifecycle transitions
// run through the status methods below so invariants stay in one place.
type Person struct {
	Key         id.PersonKey
	Name        PersonName
	BirthDate   id.BirthDate // optional; zero value means not informed
	Gender      id.Gender    // optional
	Status      id.PersonStatus
	Identifiers []ExternalIdentifier
	// MergedInto holds the surviving person's key once Status is Merged.
	MergedInto id.PersonKey
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPerson constructs an active person with a fresh alternate key.
func NewPerson(name PersonName, birthDate id.BirthDate, gender id.Gender, now time.Time) *Person {
	return &Person{
		Key:       id.NewPersonKey(),
		Name:      name,
		BirthDate: birthDate,
		Gender:    gender,
		Status:    id.PersonStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanDeactivate reports whether the person may transition to Inactive.
func (p *Person) CanDeactivate() error {
	if p.Status == id.PersonStatusMerged {
		return dErrors.New(dErrors.CodeInvalidState, "merged person cannot be deactivated")
	}
	if p.Status == id.PersonStatusInactive {
		return dErrors.New(dErrors.CodeInvalidState, "person is already inactive")
	}
	return nil
}

// ApplyDeactivate transitions the person to Inactive.
func (p *Person) ApplyDeactivate(now time.Time) {
	p.Status = id.PersonStatusInactive
	p.UpdatedAt = now
}

// CanReactivate reports whether the person may return to Active.
func (p *Person) CanReactivate() error {
	if p.Status == id.PersonStatusMerged {
		return dErrors.New(dErrors.CodeInvalidState, "merged person cannot be reactivated")
	}
	if p.Status == id.PersonStatusActive {
		return dErrors.New(dErrors.CodeInvalidState, "person is already active")
	}
	return nil
}

// ApplyReactivate transitions the person back to Active.
func (p *Person) ApplyReactivate(now time.Time) {
	p.Status = id.PersonStatusActive
	p.UpdatedAt = now
}

// CanMergeInto reports whether this person may be merged into target.
func (p *Person) CanMergeInto(target *Person) error {
	if target == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "merge target is required")
	}
	if p.Key == target.Key {
		return dErrors.New(dErrors.CodeInvalidInput, "person cannot be merged into itself")
	}
	if p.Status == id.PersonStatusMerged {
		return dErrors.New(dErrors.CodeInvalidState, "person is already merged")
	}
	if target.Status != id.PersonStatusActive {
		return dErrors.New(dErrors.CodeInvalidState, "merge target must be active")
	}
	return nil
}

// ApplyMergeInto marks this person as merged into target. The caller moves the
// identifiers to the target within the same transaction.
func (p *Person) ApplyMergeInto(target *Person, now time.Time) {
	p.Status = id.PersonStatusMerged
	p.MergedInto = target.Key
	p.Identifiers = nil
	p.UpdatedAt = now
}

// Rename replaces the person's name.
func (p *Person) Rename(name PersonName, now time.Time) error {
	if name.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if p.Status == id.PersonStatusMerged {
		return dErrors.New(dErrors.CodeInvalidState, "merged person cannot be renamed")
	}
	p.Name = name
	p.UpdatedAt = now
	return nil
}

// AddIdentifier attaches an external identifier to the person. Attaching the
// same (type, value) pair twice is a conflict.
func (p *Person) AddIdentifier(ident ExternalIdentifier, now time.Time) error {
	if !ident.Type.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid identifier type")
	}
	if ident.Value == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "identifier value cannot be empty")
	}
	if p.Status == id.PersonStatusMerged {
		return dErrors.New(dErrors.CodeInvalidState, "merged person cannot receive identifiers")
	}
	for _, existing := range p.Identifiers {
		if existing.Type == ident.Type && existing.Value == ident.Value {
			return dErrors.New(dErrors.CodeConflict, "identifier already attached")
		}
	}
	p.Identifiers = append(p.Identifiers, ident)
	p.UpdatedAt = now
	return nil
}

// RemoveIdentifier detaches an external identifier.
func (p *Person) RemoveIdentifier(identType id.IdentifierType, value string, now time.Time) error {
	for i, existing := range p.Identifiers {
		if existing.Type == identType && existing.Value == value {
			p.Identifiers = append(p.Identifiers[:i], p.Identifiers[i+1:]...)
			p.UpdatedAt = now
			return nil
		}
	}
	return dErrors.New(dErrors.CodeNotFound, "identifier not attached to person")
}

// Clone returns a deep copy so stores can hand out values without aliasing
// internal state.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Identifiers = append([]ExternalIdentifier(nil), p.Identifiers...)
	return &cp
}
