package events

import (
	"github.com/lixenwraith/argon-hud/model"
)

// Changes is the set of fields a host update touched, keyed by dotted field path
type Changes map[string]any

// Has reports whether the update touched key
func (c Changes) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c[key]
	return ok
}

// Int returns the integer value for key if present
func (c Changes) Int(key string) (int, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// ItemUpdatedPayload identifies the updated item
type ItemUpdatedPayload struct {
	Item    *model.Item
	Changes Changes
}

// CombatPayload carries the encounter and, for updates, the changed fields
type CombatPayload struct {
	Combat  *model.Combat
	Changes Changes
}

// ActorUpdatedPayload identifies the updated actor
type ActorUpdatedPayload struct {
	Actor   *model.Actor
	Changes Changes
}

// TokenUpdatedPayload identifies the updated token and forwards the raw changes
type TokenUpdatedPayload struct {
	Token   *model.Token
	Changes Changes
}

// TokenControlledPayload reports a select/deselect on the canvas
type TokenControlledPayload struct {
	Token      *model.Token
	Controlled bool
}
