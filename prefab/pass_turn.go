package prefab

import (
	"context"

	"github.com/lixenwraith/argon-hud/component"
)

// PassTurnPanel offers an end-turn button while the bound token holds the turn
// Register it with CombatView so encounter updates re-evaluate its visibility
type PassTurnPanel struct {
	component.Base
	button *ActionButton
}

// NewPassTurnPanel is a pass-turn factory
func NewPassTurnPanel() component.Component {
	return &PassTurnPanel{}
}

// Mount implements component.Component
func (p *PassTurnPanel) Mount(scope *component.Scope) *component.Container {
	return p.Init(scope, "passTurn")
}

// Buttons implements component.ButtonSource
func (p *PassTurnPanel) Buttons(ctx context.Context) ([]component.Component, error) {
	if p.button == nil {
		p.button = NewActionButton("End Turn")
		p.Container().AppendChild(p.button.Mount(p.Scope()))
	}
	return []component.Component{p.button}, nil
}

// Render implements component.Component
func (p *PassTurnPanel) Render(ctx context.Context) error {
	if err := p.Commit(); err != nil {
		return err
	}
	if p.button == nil {
		return nil
	}
	return p.button.Render(ctx)
}

// UpdateVisibility shows the panel only on the bound token's turn
func (p *PassTurnPanel) UpdateVisibility() {
	s := p.Scope()
	p.Container().SetHidden(!s.Combat().IsTurnOf(s.Token()))
}

// Teardown implements component.Component
func (p *PassTurnPanel) Teardown() {
	if p.button != nil {
		p.button.Teardown()
	}
	p.Base.Teardown()
}
