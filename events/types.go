package events

import (
	"time"
)

// EventType represents the type of host notification
type EventType int

const (
	// EventActionSetChanged signals that a panel's visible action set changed
	// Trigger: weapon-set swap, panel set-change completion
	// Consumer: main panels (UpdateVisibility) | Payload: nil
	EventActionSetChanged EventType = iota

	// EventItemUpdated signals a mutation of an item document
	// Trigger: host item update | Filter: item owner is the bound actor
	// Consumer: item buttons (Render) | Payload: *ItemUpdatedPayload
	EventItemUpdated

	// EventCombatStarted signals a new encounter became active
	// Consumer: movement indicator, binder (open on combat start) | Payload: *CombatPayload
	EventCombatStarted

	// EventCombatUpdated signals turn/round changes of the active encounter
	// Consumer: combat-view panels, movement indicator on "round" change | Payload: *CombatPayload
	EventCombatUpdated

	// EventCombatEnded signals the encounter was deleted
	// Consumer: movement indicator | Payload: *CombatPayload
	EventCombatEnded

	// EventActorUpdated signals a mutation of an actor document
	// Filter: actor is the bound actor | Consumer: portrait | Payload: *ActorUpdatedPayload
	EventActorUpdated

	// EventTokenUpdated signals a mutation of a token document
	// Filter: token is the bound token | Consumer: movement indicator | Payload: *TokenUpdatedPayload
	EventTokenUpdated

	// EventTokenControlled signals a selection change on the canvas
	// Filter: controlled (not released) | Consumer: binder when always-on | Payload: *TokenControlledPayload
	EventTokenControlled

	eventTypeCount
)

// Event represents a single host notification with metadata
type Event struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}

// NewEvent stamps an event with the current time
func NewEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload, Timestamp: time.Now()}
}

// AllTypes returns every known event type in declaration order
func AllTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		types = append(types, t)
	}
	return types
}
