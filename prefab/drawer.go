package prefab

import (
	"context"
	"fmt"

	"github.com/lixenwraith/argon-hud/component"
)

// DrawerPanel lists the actor's items behind a collapsible header
type DrawerPanel struct {
	component.Base
}

// NewDrawerPanel is a drawer factory
func NewDrawerPanel() component.Component {
	return &DrawerPanel{}
}

// Mount implements component.Component
func (d *DrawerPanel) Mount(scope *component.Scope) *component.Container {
	c := d.Init(scope, "drawer")
	c.SetCollapsed(true)
	return c
}

// Toggle flips the expanded state and re-renders
func (d *DrawerPanel) Toggle(ctx context.Context) error {
	c := d.Container()
	c.SetCollapsed(!c.Collapsed())
	return d.Render(ctx)
}

// Collapse implements component.Collapsible
func (d *DrawerPanel) Collapse() {
	if c := d.Container(); c != nil {
		c.SetCollapsed(true)
		_ = d.Render(d.Scope().Context())
	}
}

// Render implements component.Component
func (d *DrawerPanel) Render(ctx context.Context) error {
	actor := d.Scope().Actor()
	count := 0
	if actor != nil {
		count = len(actor.Items)
	}

	lines := []component.Line{{Text: fmt.Sprintf("Items (%d)", count), Tone: component.ToneMuted}}
	if !d.Container().Collapsed() && actor != nil {
		for _, it := range actor.Items {
			mark := " "
			if it.Equipped {
				mark = "*"
			}
			lines = append(lines, component.Line{Text: mark + it.Name})
		}
	}
	return d.Commit(lines...)
}
