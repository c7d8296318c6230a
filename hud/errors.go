package hud

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/theme"
)

var (
	// ErrInvalidBindTarget: the target is neither an actor nor a token reference
	// Returned to the caller of Bind; HUD state is unchanged
	ErrInvalidBindTarget = errors.New("invalid bind target")

	// ErrMissingEntity: a token resolved to no actor; logged, bind proceeds with a nil actor
	ErrMissingEntity = errors.New("no actor found for token")

	// ErrComponentRender: a single component failed to render; isolated and logged
	ErrComponentRender = errors.New("component render failed")

	// ErrComponentConstruct: a registered factory was nil or panicked; role left out of the tree
	ErrComponentConstruct = errors.New("component construction failed")

	// ErrMissingSystemAdapter: the companion system module is inactive; HUD runs degraded
	ErrMissingSystemAdapter = errors.New("system adapter module not active")

	// ErrThemeFetch: the theme could not be loaded; HUD falls back to default colors
	ErrThemeFetch = theme.ErrFetch

	// ErrStaleBuild: a commit from a superseded build was discarded
	ErrStaleBuild = component.ErrStaleBuild
)
