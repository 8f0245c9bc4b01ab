package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "pessoas/pkg/domain-errors"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid bare", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"valid with zero check digits", "46761018480", true},
		{"bad first check digit", "52998224735", false},
		{"bad second check digit", "52998224726", false},
		{"all repeated digits", "11111111111", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"empty", "", false},
		{"letters", "abcdefghijk", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCPF(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidDocument))
			}
		})
	}
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid bare", "11222333000181", true},
		{"valid formatted", "11.222.333/0001-81", true},
		{"bad check digit", "11222333000182", false},
		{"all repeated digits", "00000000000000", false},
		{"too short", "1122233300018", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCNPJ(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
