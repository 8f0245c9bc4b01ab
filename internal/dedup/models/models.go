// Package models defines result types for duplicate detection.
package models

import (
	"fmt"

	person "pessoas/internal/person/models"
	dErrors "pessoas/pkg/domain-errors"
)

// MatchReason explains why a person was flagged as a potential duplicate.
type MatchReason string

const (
	// ReasonExactMatch means the normalized name and birth date both matched exactly.
	ReasonExactMatch MatchReason = "exact_match"
	// ReasonSimilarNameExactBirthDate means the names are similar and birth dates equal.
	ReasonSimilarNameExactBirthDate MatchReason = "similar_name_exact_birth_date"
	// ReasonExactNameSimilarBirthDate means the names matched exactly and the birth
	// dates fall within the proximity window.
	ReasonExactNameSimilarBirthDate MatchReason = "exact_name_similar_birth_date"
	// ReasonSimilarNameSimilarBirthDate means both signals were fuzzy matches.
	ReasonSimilarNameSimilarBirthDate MatchReason = "similar_name_similar_birth_date"
	// ReasonSimilarName applies when the query carries no birth date and only
	// name similarity could be scored.
	ReasonSimilarName MatchReason = "similar_name"
	// ReasonMatchedByIdentifier means an external identifier pair matched exactly.
	ReasonMatchedByIdentifier MatchReason = "matched_by_identifier"
)

// DuplicateResult is a single scored candidate from a duplicate search.
type DuplicateResult struct {
	Person *person.Person `json:"person"`
	Score  float64        `json:"score"`
	Reason MatchReason    `json:"reason"`
}

// NewDuplicateResult builds a result, rejecting scores outside [0, 1].
func NewDuplicateResult(p *person.Person, score float64, reason MatchReason) (DuplicateResult, error) {
	if score < 0 || score > 1 {
		return DuplicateResult{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("similarity score %v outside [0, 1]", score))
	}
	return DuplicateResult{Person: p, Score: score, Reason: reason}, nil
}

// ValidationResult is the verdict of a pre-creation duplicate check.
type ValidationResult struct {
	CanCreate  bool              `json:"can_create"`
	Duplicates []DuplicateResult `json:"duplicates,omitempty"`
	Message    string            `json:"message,omitempty"`
}
