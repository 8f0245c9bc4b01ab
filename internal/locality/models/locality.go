// Package models defines the geographic hierarchy used by addresses.
package models

import (
	"strings"

	id "pessoas/pkg/domain"
	pstrings "pessoas/pkg/platform/strings"
)

// Locality is a node in the country/state/city/district hierarchy. Code is
// the IBGE-style numeric code carried as a string to preserve leading zeros.
type Locality struct {
	ID             id.LocalityID   `json:"id"`
	Type           id.LocalityType `json:"type"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	NormalizedName string          `json:"normalized_name"`
	ParentID       id.LocalityID   `json:"parent_id"`
}

// Normalize fills NormalizedName from Name and trims stray whitespace.
func (l *Locality) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Code = strings.TrimSpace(l.Code)
	l.NormalizedName = pstrings.NormalizeName(l.Name)
}

// Clone returns a copy so stores and caches can hand out values without
// aliasing.
func (l *Locality) Clone() *Locality {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}
