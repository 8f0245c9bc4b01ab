package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "pessoas/pkg/domain"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "maria silva", "maria silva", 1.0},
		{"both empty", "", "", 0.0},
		{"one empty", "maria silva", "", 0.0},
		{"no letters in common", "abc", "xyz", 0.0},
		{"classic transposition", "martha", "marhta", 0.961111},
		{"extra letter", "maria silva", "maria silvia", 0.983333},
		{"different surname", "maria silva", "maria santos", 0.878788},
		{"unrelated names", "maria silva", "jose pereira", 0.557071},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, nameSimilarity(tt.a, tt.b), 1e-6)
			// Similarity is symmetric.
			assert.InDelta(t, tt.expected, nameSimilarity(tt.b, tt.a), 1e-6)
		})
	}
}

func TestNameSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "ab"},
		{"maria", "maria silva dos santos"},
		{"joao", "joana"},
		{"x", "x"},
	}
	for _, pair := range pairs {
		score := nameSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0, "%q vs %q", pair[0], pair[1])
		assert.LessOrEqual(t, score, 1.0, "%q vs %q", pair[0], pair[1])
	}
}

func TestBirthDateProximity(t *testing.T) {
	base := id.MustBirthDate("1990-01-15")
	tests := []struct {
		name     string
		other    string
		expected float64
	}{
		{"same day", "1990-01-15", 1.0},
		{"one day apart", "1990-01-16", 0.9},
		{"two days apart", "1990-01-13", 0.75},
		{"window edge", "1990-01-22", 0.0},
		{"beyond window", "1990-01-23", 0.0},
		{"month apart", "1990-02-15", 0.0},
		{"year apart", "1991-01-15", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := id.MustBirthDate(tt.other)
			assert.InDelta(t, tt.expected, birthDateProximity(base, other, 7), 1e-6)
			assert.InDelta(t, tt.expected, birthDateProximity(other, base, 7), 1e-6)
		})
	}
}

func TestBirthDateProximityMissingDates(t *testing.T) {
	base := id.MustBirthDate("1990-01-15")
	assert.Zero(t, birthDateProximity(base, id.BirthDate{}, 7))
	assert.Zero(t, birthDateProximity(id.BirthDate{}, base, 7))
	assert.Zero(t, birthDateProximity(id.BirthDate{}, id.BirthDate{}, 7))
	assert.Zero(t, birthDateProximity(base, base, 0))
}

func TestBirthDateProximitySingleDayWindow(t *testing.T) {
	base := id.MustBirthDate("1990-01-15")
	next := id.MustBirthDate("1990-01-16")
	assert.InDelta(t, 0.9, birthDateProximity(base, next, 1), 1e-6)
	assert.Zero(t, birthDateProximity(base, id.MustBirthDate("1990-01-17"), 1))
}

func TestCombinedScore(t *testing.T) {
	assert.InDelta(t, 0.85, combinedScore(0.85, 0.0, false), 1e-6)
	assert.InDelta(t, 1.0, combinedScore(1.0, 1.0, true), 1e-6)
	assert.InDelta(t, 0.7, combinedScore(1.0, 0.0, true), 1e-6)
	assert.InDelta(t, 0.3, combinedScore(0.0, 1.0, true), 1e-6)
	assert.InDelta(t, 0.7*0.983333+0.3*0.9, combinedScore(0.983333, 0.9, true), 1e-6)
}
