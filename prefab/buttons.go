package prefab

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/model"
)

// ItemButton renders a usable item with its remaining uses
type ItemButton struct {
	component.Base
	item    *model.Item
	renders atomic.Int64
}

// NewItemButton creates a button bound to item
func NewItemButton(item *model.Item) *ItemButton {
	return &ItemButton{item: item}
}

// Item implements component.ItemBound
func (b *ItemButton) Item() *model.Item { return b.item }

// Renders returns how many times Render ran
func (b *ItemButton) Renders() int64 { return b.renders.Load() }

// Mount implements component.Component
func (b *ItemButton) Mount(scope *component.Scope) *component.Container {
	c := b.Init(scope, "item:"+b.item.ID)
	c.SetMarginRight(1)
	return c
}

// Render implements component.Component
func (b *ItemButton) Render(ctx context.Context) error {
	b.renders.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	label := b.item.Name
	tone := component.ToneDefault
	if b.item.MaxUses > 0 {
		label = fmt.Sprintf("%s %d/%d", b.item.Name, b.item.Uses, b.item.MaxUses)
		if b.item.Uses == 0 {
			tone = component.ToneMuted
		}
	}
	if b.item.Equipped {
		tone = component.ToneActive
	}
	return b.Commit(component.Line{Text: label, Tone: tone})
}

// ActionButton is a label-only button not bound to an item
type ActionButton struct {
	component.Base
	label string
}

// NewActionButton creates a label button
func NewActionButton(label string) *ActionButton {
	return &ActionButton{label: label}
}

// Mount implements component.Component
func (b *ActionButton) Mount(scope *component.Scope) *component.Container {
	return b.Init(scope, "action:"+b.label)
}

// Render implements component.Component
func (b *ActionButton) Render(ctx context.Context) error {
	return b.Commit(component.Line{Text: b.label, Tone: component.ToneAccent})
}
