package component

import (
	"context"
	"log/slog"

	"github.com/lixenwraith/argon-hud/config"
	"github.com/lixenwraith/argon-hud/model"
)

// ScopeConfig wires a Scope to the build that owns it
type ScopeConfig struct {
	Context    context.Context
	Generation uint64
	// IsCurrent reports whether generation is still the live build
	IsCurrent func(generation uint64) bool
	Actor     *model.Actor
	Token     *model.Token
	Settings  func() config.Settings
	Combat    func() *model.Combat
	Logger    *slog.Logger
}

// Scope is the build-scoped view a component sees
// A Scope never outlives its build: once superseded, Current returns false and Context is cancelled
type Scope struct {
	cfg ScopeConfig
}

// NewScope creates a scope for one build
func NewScope(cfg ScopeConfig) *Scope {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scope{cfg: cfg}
}

// Context is cancelled when the build is superseded or torn down
func (s *Scope) Context() context.Context { return s.cfg.Context }

// Generation returns the build generation this scope belongs to
func (s *Scope) Generation() uint64 { return s.cfg.Generation }

// Current reports whether the owning build is still the live tree
func (s *Scope) Current() bool {
	if s.cfg.Context.Err() != nil {
		return false
	}
	return s.cfg.IsCurrent == nil || s.cfg.IsCurrent(s.cfg.Generation)
}

// Actor returns the bound actor, possibly nil
func (s *Scope) Actor() *model.Actor { return s.cfg.Actor }

// Token returns the bound token, nil when the actor has no presence
func (s *Scope) Token() *model.Token { return s.cfg.Token }

// Settings returns the current settings snapshot
func (s *Scope) Settings() config.Settings {
	if s.cfg.Settings == nil {
		return config.Default()
	}
	return s.cfg.Settings()
}

// Combat returns the active encounter, nil outside combat
func (s *Scope) Combat() *model.Combat {
	if s.cfg.Combat == nil {
		return nil
	}
	return s.cfg.Combat()
}

// Logger returns the HUD logger
func (s *Scope) Logger() *slog.Logger { return s.cfg.Logger }

// NewContainer creates a container whose commits are guarded by this scope
func (s *Scope) NewContainer(name string) *Container {
	return NewContainer(name, s.Current)
}
