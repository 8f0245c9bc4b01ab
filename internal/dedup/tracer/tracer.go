// Package tracer is a small tracing abstraction for duplicate detection.
// It keeps the dedup service decoupled from the OpenTelemetry API while
// still emitting spans in production.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

func Float64(key string, value float64) Attribute { return Attribute{Key: key, Value: value} }

// HashName returns a short SHA-256 digest of a person name so traces can be
// correlated without recording PII.
func HashName(name string) string {
	if name == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:8])
}

// Span names used by the dedup service.
const (
	SpanCheckDuplicate    = "dedup.check_duplicate"
	SpanFindDuplicates    = "dedup.find_potential_duplicates"
	SpanCheckByIdentifier = "dedup.check_by_identifier"
	SpanValidateCreation  = "dedup.validate_creation"
)

// Attribute keys used by the dedup service.
const (
	AttrNameHash      = "person.name_hash"
	AttrHasBirthDate  = "query.has_birth_date"
	AttrThreshold     = "query.threshold"
	AttrCandidates    = "result.candidates"
	AttrMatches       = "result.matches"
	AttrCanCreate     = "result.can_create"
	AttrIdentifierTyp = "query.identifier_type"
)
