package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Maria Silva", "maria silva"},
		{"trims and collapses whitespace", "  Maria   Silva ", "maria silva"},
		{"strips diacritics", "José Antônio Conceição", "jose antonio conceicao"},
		{"tabs and newlines collapse", "Maria\tda\nSilva", "maria da silva"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		{"cedilla folds to c", "Gonçalves", "goncalves"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"Maria Silva", "José  da Silva", "ÀÉÎÕÜ ç"}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once))
	}
}

func TestDedupeAndTrim(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar"}, DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "}))

	var empty []string
	assert.Equal(t, empty, DedupeAndTrim(nil))
}
