// Package audit captures who did what to which person record. Events are
// emitted from domain services, enriched from the request context, and
// fanned out to a sink asynchronously.
package audit

import (
	"time"

	id "pessoas/pkg/domain"
)

// Action identifies what happened to a person record.
type Action string

const (
	ActionPersonCreated         Action = "person_created"
	ActionPersonRenamed         Action = "person_renamed"
	ActionPersonDeactivated     Action = "person_deactivated"
	ActionPersonReactivated     Action = "person_reactivated"
	ActionPersonMerged          Action = "person_merged"
	ActionIdentifierAdded       Action = "identifier_added"
	ActionIdentifierRemoved     Action = "identifier_removed"
	ActionDuplicateCheckBlocked Action = "duplicate_check_blocked"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	Actor     string       `json:"actor"`
	PersonKey id.PersonKey `json:"person_key"`
	Action    Action       `json:"action"`
	Reason    string       `json:"reason,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Device    string       `json:"device,omitempty"`
}
