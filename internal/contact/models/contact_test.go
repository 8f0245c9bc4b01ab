package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "pessoas/pkg/domain"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		name        string
		contactType id.ContactType
		in          string
		want        string
		wantErr     bool
	}{
		{"email lowercased", id.ContactTypeEmail, "Ana@Example.com", "ana@example.com", false},
		{"email trimmed", id.ContactTypeEmail, "  ana@example.com ", "ana@example.com", false},
		{"email with display name rejected", id.ContactTypeEmail, "Ana <ana@example.com>", "", true},
		{"email without domain rejected", id.ContactTypeEmail, "ana@", "", true},
		{"landline kept as digits", id.ContactTypePhone, "(11) 3333-4444", "1133334444", false},
		{"mobile kept as digits", id.ContactTypeMobile, "+55 11 98765-4321", "", true},
		{"mobile national format", id.ContactTypeMobile, "11 98765-4321", "11987654321", false},
		{"phone too short", id.ContactTypePhone, "98765", "", true},
		{"zero type rejected", id.ContactType{}, "x", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeValue(tc.contactType, tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
