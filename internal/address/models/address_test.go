package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pessoas/pkg/domain-errors"
)

func TestNormalizeCEP(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"01310-100", "01310100", false},
		{"01310100", "01310100", false},
		{" 04538-133 ", "04538133", false},
		{"1310100", "", true},
		{"013101000", "", true},
		{"01310-10a", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeCEP(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}
