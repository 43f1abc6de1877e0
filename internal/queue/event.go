// Package queue defines the change events published to the message broker
// after successful writes, the publisher used by the HTTP layer and the
// consumer that records them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds.
const (
	KindFollowInserted  = "follow.inserted"
	KindRecipeUpdated   = "recipe.updated"
	KindMealPlanDeleted = "mealplan.deleted"
	KindDatabaseSetup   = "database.setup"
)

// ChangeEvent describes one committed write. It carries enough to audit the
// change without querying the database again.
type ChangeEvent struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Entity     string         `json:"entity"`
	Key        map[string]any `json:"key,omitempty"`
	Fields     map[string]any `json:"fields,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt string         `json:"occurred_at"`
}

// NewChangeEvent stamps an event with a fresh ID and the current UTC time.
func NewChangeEvent(kind, entity string, key map[string]any) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New().String(),
		Kind:       kind,
		Entity:     entity,
		Key:        key,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
