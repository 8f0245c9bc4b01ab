package domain

import (
	"time"

	dErrors "pessoas/pkg/domain-errors"
)

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = "2006-01-02"

// BirthDate is a calendar date without a time component. The zero value means
// "not informed"; callers should check IsZero before comparing.
type BirthDate struct {
	t time.Time
}

// NewBirthDate constructs a BirthDate from calendar components.
// The date is normalized to midnight UTC so equality is purely calendrical.
func NewBirthDate(year int, month time.Month, day int) (BirthDate, error) {
	if year <= 0 {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "birth date year must be positive")
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date silently normalizes overflow (Feb 30 -> Mar 2); reject that.
	y, m, d := t.Date()
	if y != year || m != month || d != day {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "invalid calendar date")
	}
	if t.After(time.Now().UTC()) {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "birth date cannot be in the future")
	}
	return BirthDate{t: t}, nil
}

// ParseBirthDate parses a YYYY-MM-DD string. Use at trust boundaries.
func ParseBirthDate(s string) (BirthDate, error) {
	if s == "" {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "birth date cannot be empty")
	}
	t, err := time.ParseInLocation(birthDateLayout, s, time.UTC)
	if err != nil {
		return BirthDate{}, dErrors.New(dErrors.CodeInvalidInput, "birth date must be YYYY-MM-DD")
	}
	return NewBirthDate(t.Year(), t.Month(), t.Day())
}

// MustBirthDate is a test helper; panics on invalid input.
func MustBirthDate(s string) BirthDate {
	d, err := ParseBirthDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date was never set.
func (d BirthDate) IsZero() bool { return d.t.IsZero() }

// Equal reports exact calendar equality.
func (d BirthDate) Equal(other BirthDate) bool { return d.t.Equal(other.t) }

// DaysApart returns the absolute distance in whole days between two dates.
func (d BirthDate) DaysApart(other BirthDate) int {
	diff := d.t.Sub(other.t)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// Time exposes the underlying midnight-UTC instant for store serialization.
func (d BirthDate) Time() time.Time { return d.t }

// String returns the YYYY-MM-DD representation, or "" when unset.
func (d BirthDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(birthDateLayout)
}

// MarshalText renders the date for JSON payloads; unset dates become "".
func (d BirthDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts "" as the unset date.
func (d *BirthDate) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = BirthDate{}
		return nil
	}
	parsed, err := ParseBirthDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
