package prefab

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/model"
)

// ItemFilter selects which items an ActionPanel offers
type ItemFilter func(*model.Item) bool

// AllUsable offers every usable item
func AllUsable(it *model.Item) bool { return it.Usable() }

// EquippedOnly offers equipped usable items
func EquippedOnly(it *model.Item) bool { return it.Usable() && it.Equipped }

// ActionPanel offers one ItemButton per matching item of the bound actor
type ActionPanel struct {
	component.Base
	label  string
	filter ItemFilter

	mu      sync.Mutex
	buttons []component.Component
}

// NewActionPanel returns a factory for an action panel with the given label and filter
func NewActionPanel(label string, filter ItemFilter) component.Factory {
	if filter == nil {
		filter = AllUsable
	}
	return func() component.Component {
		return &ActionPanel{label: label, filter: filter}
	}
}

// Mount implements component.Component
func (p *ActionPanel) Mount(scope *component.Scope) *component.Container {
	return p.Init(scope, p.label)
}

// Buttons implements component.ButtonSource
// Repeated calls replace the previous button set
func (p *ActionPanel) Buttons(ctx context.Context) ([]component.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scope := p.Scope()
	actor := scope.Actor()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buttons {
		b.Teardown()
	}
	p.buttons = nil
	p.Container().ClearChildren()
	if actor == nil {
		return nil, nil
	}

	for _, it := range actor.Items {
		if !p.filter(it) {
			continue
		}
		btn := NewItemButton(it)
		p.Container().AppendChild(btn.Mount(scope))
		p.buttons = append(p.buttons, btn)
	}
	return append([]component.Component(nil), p.buttons...), nil
}

// Render implements component.Component
func (p *ActionPanel) Render(ctx context.Context) error {
	if err := p.Commit(component.Line{Text: p.label, Tone: component.ToneTitle}); err != nil {
		return err
	}
	p.mu.Lock()
	buttons := append([]component.Component(nil), p.buttons...)
	p.mu.Unlock()

	for _, b := range buttons {
		if err := b.Render(ctx); err != nil {
			return errors.Wrapf(err, "%s button", p.label)
		}
	}
	return nil
}

// UpdateVisibility hides the panel when none of its items has uses left
func (p *ActionPanel) UpdateVisibility() {
	p.mu.Lock()
	defer p.mu.Unlock()
	visible := false
	for _, b := range p.buttons {
		if ib, ok := b.(component.ItemBound); ok && ib.Item().Usable() {
			visible = true
			break
		}
	}
	p.Container().SetHidden(!visible)
}

// Teardown implements component.Component
func (p *ActionPanel) Teardown() {
	p.mu.Lock()
	for _, b := range p.buttons {
		b.Teardown()
	}
	p.buttons = nil
	p.mu.Unlock()
	p.Base.Teardown()
}
