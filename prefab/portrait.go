package prefab

import (
	"context"
	"fmt"
	"strings"

	"github.com/lixenwraith/argon-hud/component"
)

const hpBarWidth = 10

// PortraitPanel shows the actor name and hit points
type PortraitPanel struct {
	component.Base
}

// NewPortraitPanel is a portrait factory
func NewPortraitPanel() component.Component {
	return &PortraitPanel{}
}

// Mount implements component.Component
func (p *PortraitPanel) Mount(scope *component.Scope) *component.Container {
	return p.Init(scope, "portrait")
}

// Render implements component.Component
func (p *PortraitPanel) Render(ctx context.Context) error {
	actor := p.Scope().Actor()
	if actor == nil {
		return p.Commit(component.Line{Text: "No actor", Tone: component.ToneMuted})
	}

	tone := component.ToneDefault
	if actor.MaxHP > 0 && actor.HP*4 <= actor.MaxHP {
		tone = component.ToneAlert
	}
	return p.Commit(
		component.Line{Text: actor.Name, Tone: component.ToneTitle},
		component.Line{Text: hpBar(actor.HP, actor.MaxHP), Tone: tone},
		component.Line{Text: fmt.Sprintf("HP %d/%d", actor.HP, actor.MaxHP), Tone: tone},
	)
}

func hpBar(hp, maxHP int) string {
	filled := 0
	if maxHP > 0 {
		filled = hp * hpBarWidth / maxHP
	}
	if filled < 0 {
		filled = 0
	}
	if filled > hpBarWidth {
		filled = hpBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)
}
