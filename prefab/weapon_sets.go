// Package prefab provides default and example implementations of the component contract
package prefab

import (
	"context"
	"fmt"
	"strings"

	"github.com/lixenwraith/argon-hud/component"
)

// WeaponSetCount is the number of selectable weapon sets
const WeaponSetCount = 3

// WeaponSets shows the selectable weapon sets with the active one highlighted
type WeaponSets struct {
	component.Base
}

// NewWeaponSets is the default weapon-set factory
func NewWeaponSets() component.Component {
	return &WeaponSets{}
}

// Mount implements component.Component
func (w *WeaponSets) Mount(scope *component.Scope) *component.Container {
	return w.Init(scope, "weaponSets")
}

// Active returns the active set, defaulting to 1
func (w *WeaponSets) Active() int {
	actor := w.Scope().Actor()
	if actor == nil || actor.WeaponSet < 1 || actor.WeaponSet > WeaponSetCount {
		return 1
	}
	return actor.WeaponSet
}

// Render implements component.Component
func (w *WeaponSets) Render(ctx context.Context) error {
	active := w.Active()
	var sb strings.Builder
	for i := 1; i <= WeaponSetCount; i++ {
		if i == active {
			fmt.Fprintf(&sb, "[%d]", i)
		} else {
			fmt.Fprintf(&sb, " %d ", i)
		}
	}
	return w.Commit(
		component.Line{Text: "Sets", Tone: component.ToneMuted},
		component.Line{Text: sb.String(), Tone: component.ToneActive},
	)
}
