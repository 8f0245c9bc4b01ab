package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pessoas/pkg/domain-errors"
)

func TestParsePersonKey(t *testing.T) {
	t.Run("valid UUID round-trips", func(t *testing.T) {
		raw := uuid.NewString()
		key, err := ParsePersonKey(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, key.String())
		assert.False(t, key.IsNil())
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := ParsePersonKey("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		_, err := ParsePersonKey("not-a-uuid")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("nil UUID parses but IsNil", func(t *testing.T) {
		key, err := ParsePersonKey(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, key.IsNil())
	})
}

func TestNewPersonKey(t *testing.T) {
	a := NewPersonKey()
	b := NewPersonKey()
	assert.False(t, a.IsNil())
	assert.NotEqual(t, a, b)
}

func TestBirthDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := ParseBirthDate("1990-01-15")
		require.NoError(t, err)
		assert.Equal(t, "1990-01-15", d.String())
		assert.False(t, d.IsZero())
	})

	t.Run("rejects bad format", func(t *testing.T) {
		_, err := ParseBirthDate("15/01/1990")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects impossible calendar date", func(t *testing.T) {
		_, err := ParseBirthDate("1990-02-30")
		assert.Error(t, err)
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := ParseBirthDate("2999-01-01")
		assert.Error(t, err)
	})

	t.Run("equality is calendrical", func(t *testing.T) {
		a := MustBirthDate("1990-01-15")
		b := MustBirthDate("1990-01-15")
		assert.True(t, a.Equal(b))
	})

	t.Run("days apart is symmetric", func(t *testing.T) {
		a := MustBirthDate("1990-01-15")
		b := MustBirthDate("1990-01-18")
		assert.Equal(t, 3, a.DaysApart(b))
		assert.Equal(t, 3, b.DaysApart(a))
		assert.Equal(t, 0, a.DaysApart(a))
	})
}

func TestPersonStatusCodes(t *testing.T) {
	for code, want := range map[int]PersonStatus{
		1: PersonStatusActive,
		2: PersonStatusInactive,
		3: PersonStatusMerged,
	} {
		got, ok := PersonStatusFromCode(code)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := PersonStatusFromCode(42)
	assert.False(t, ok)

	st, err := ParsePersonStatus("merged")
	require.NoError(t, err)
	assert.Equal(t, PersonStatusMerged, st)

	_, err = ParsePersonStatus("deleted")
	assert.Error(t, err)
}

func TestAddressTypeCodes(t *testing.T) {
	got, ok := AddressTypeFromCode(1)
	require.True(t, ok)
	assert.Equal(t, AddressTypeResidential, got)

	_, ok = AddressTypeFromCode(0)
	assert.False(t, ok)

	parsed, err := ParseAddressType("commercial")
	require.NoError(t, err)
	assert.Equal(t, AddressTypeCommercial, parsed)
}

func TestLocalityTypeCodes(t *testing.T) {
	got, ok := LocalityTypeFromCode(3)
	require.True(t, ok)
	assert.Equal(t, LocalityTypeCity, got)

	_, ok = LocalityTypeFromCode(99)
	assert.False(t, ok)

	text, err := LocalityTypeState.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "state", string(text))

	var parsed LocalityType
	require.NoError(t, parsed.UnmarshalText([]byte("district")))
	assert.Equal(t, LocalityTypeDistrict, parsed)
}

func TestContactTypeCodes(t *testing.T) {
	got, ok := ContactTypeFromCode(3)
	require.True(t, ok)
	assert.Equal(t, ContactTypeMobile, got)

	_, ok = ContactTypeFromCode(9)
	assert.False(t, ok)

	parsed, err := ParseContactType("email")
	require.NoError(t, err)
	assert.Equal(t, ContactTypeEmail, parsed)

	_, err = ParseContactType("fax")
	assert.Error(t, err)
}

func TestParseIdentifierType(t *testing.T) {
	parsed, err := ParseIdentifierType("cpf")
	require.NoError(t, err)
	assert.Equal(t, IdentifierTypeCPF, parsed)

	_, err = ParseIdentifierType("")
	assert.Error(t, err)

	_, err = ParseIdentifierType("unknown")
	assert.Error(t, err)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("")
	require.NoError(t, err)
	assert.True(t, g.IsZero())

	g, err = ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("bogus")
	assert.Error(t, err)
}
