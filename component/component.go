// Package component defines the lifecycle contract every HUD element implements
//
// Lifecycle:
//  1. Factory constructs the instance; no I/O
//  2. Mount attaches it to a build Scope and returns its Container
//  3. Render refreshes content from the subject and commits through the Container
//  4. Teardown releases it when the build is discarded
//
// Higher layers depend only on this contract and the optional capability interfaces,
// never on concrete component types.
package component

import (
	"context"

	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/model"
)

// Component is the minimal lifecycle of a visual element
type Component interface {
	// Mount attaches the component to a build and returns its container
	// Called once per instance, before any Render
	Mount(scope *Scope) *Container

	// Render refreshes displayed content from current subject state
	// Side effects are confined to the component's own container
	Render(ctx context.Context) error

	// Teardown releases the instance; no registration may survive it
	Teardown()
}

// Factory constructs a component instance; must be pure
type Factory func() Component

// ButtonSource is implemented by main panels that offer a button set
// Panels yielding no buttons are excluded from the tree
type ButtonSource interface {
	Buttons(ctx context.Context) ([]Component, error)
}

// VisibilityUpdater re-evaluates its own visibility independent of siblings
type VisibilityUpdater interface {
	UpdateVisibility()
}

// MovementTracker receives encounter and token updates
type MovementTracker interface {
	NewRound(combat *model.Combat)
	CombatEnd(combat *model.Combat)
	PresenceUpdate(changes events.Changes)
}

// ItemBound is implemented by buttons that represent a usable item
// Such buttons are indexed by item ID for targeted re-render
type ItemBound interface {
	Item() *model.Item
}

// Collapsible is implemented by panels with an expandable section
type Collapsible interface {
	Collapse()
}
