package prefab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/model"
)

func testActor() *model.Actor {
	a := &model.Actor{ID: "aria", Name: "Aria", HP: 20, MaxHP: 20, Speed: 6, WeaponSet: 2}
	a.Items = []*model.Item{
		{ID: "sword", Name: "Sword", Equipped: true, Owner: a},
		{ID: "potion", Name: "Potion", Uses: 1, MaxUses: 1, Owner: a},
		{ID: "wand", Name: "Wand", Uses: 0, MaxUses: 3, Owner: a},
	}
	tok := &model.Token{ID: "tok-aria", X: 2, Y: 2, Actor: a}
	a.ActiveTokens = []*model.Token{tok}
	return a
}

func scopeFor(a *model.Actor, combat *model.Combat) *component.Scope {
	var tok *model.Token
	if a != nil && len(a.ActiveTokens) > 0 {
		tok = a.ActiveTokens[0]
	}
	return component.NewScope(component.ScopeConfig{
		Actor:  a,
		Token:  tok,
		Combat: func() *model.Combat { return combat },
	})
}

func texts(c *component.Container) []string {
	var out []string
	for _, l := range c.Lines() {
		out = append(out, l.Text)
	}
	return out
}

func TestActionPanelFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter ItemFilter
		want   []string
	}{
		{"all usable", AllUsable, []string{"sword", "potion"}},
		{"equipped only", EquippedOnly, []string{"sword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewActionPanel("Actions", tt.filter)()
			p.Mount(scopeFor(testActor(), nil))

			buttons, err := p.(component.ButtonSource).Buttons(context.Background())
			require.NoError(t, err)
			var ids []string
			for _, b := range buttons {
				ids = append(ids, b.(component.ItemBound).Item().ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestActionPanelButtonsReplaced(t *testing.T) {
	a := testActor()
	p := NewActionPanel("Actions", AllUsable)()
	c := p.Mount(scopeFor(a, nil))
	src := p.(component.ButtonSource)

	first, err := src.Buttons(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Len(t, c.Children(), 2)
	require.NoError(t, p.Render(context.Background()))
	width := c.ContentWidth()

	second, err := src.Buttons(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NoError(t, p.Render(context.Background()))
	assert.Len(t, c.Children(), 2, "previous buttons are no longer children")
	assert.Equal(t, width, c.ContentWidth())
	for i, ch := range c.Children() {
		assert.NotSame(t, first[i].(*ItemButton).Container(), ch)
	}
}

func TestActionPanelVisibility(t *testing.T) {
	a := testActor()
	p := NewActionPanel("Consumables", func(it *model.Item) bool { return it.MaxUses > 0 && it.Uses > 0 })()
	c := p.Mount(scopeFor(a, nil))
	buttons, err := p.(component.ButtonSource).Buttons(context.Background())
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	require.NoError(t, p.Render(context.Background()))

	p.(component.VisibilityUpdater).UpdateVisibility()
	assert.False(t, c.Hidden())

	a.Items[1].Uses = 0
	p.(component.VisibilityUpdater).UpdateVisibility()
	assert.True(t, c.Hidden(), "no uses left hides the panel")
}

func TestItemButtonRender(t *testing.T) {
	a := testActor()
	b := NewItemButton(a.Items[1])
	c := b.Mount(scopeFor(a, nil))
	require.NoError(t, b.Render(context.Background()))
	assert.Equal(t, []string{"Potion 1/1"}, texts(c))
	assert.Equal(t, 1, c.MarginRight())

	a.Items[1].Uses = 0
	require.NoError(t, b.Render(context.Background()))
	assert.Equal(t, component.ToneMuted, c.Lines()[0].Tone)
	assert.EqualValues(t, 2, b.Renders())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.Render(ctx), context.Canceled)
}

func TestMovementTracking(t *testing.T) {
	a := testActor()
	m := NewMovementHud().(*MovementHud)
	c := m.Mount(scopeFor(a, nil))

	m.PresenceUpdate(events.Changes{"x": 5, "y": 3})
	assert.Equal(t, 3, m.Moved(), "diagonal steps cost one square")

	m.PresenceUpdate(events.Changes{"y": 7})
	assert.Equal(t, 7, m.Moved())
	assert.Equal(t, component.ToneAlert, c.Lines()[1].Tone, "over speed is flagged")

	m.PresenceUpdate(events.Changes{"hidden": true})
	assert.Equal(t, 7, m.Moved(), "unrelated changes are ignored")

	a.ActiveTokens[0].X, a.ActiveTokens[0].Y = 5, 7
	m.NewRound(&model.Combat{Round: 2})
	assert.Zero(t, m.Moved())
	assert.Equal(t, []string{"Move R2", "0/6"}, texts(c))

	m.PresenceUpdate(events.Changes{"x": 6})
	assert.Equal(t, 1, m.Moved())

	m.CombatEnd(nil)
	assert.Zero(t, m.Moved())
	assert.Equal(t, "Move", c.Lines()[0].Text)
}

func TestPassTurnVisibility(t *testing.T) {
	a := testActor()
	combat := &model.Combat{Round: 1, CurrentTokenID: "someone-else"}
	p := NewPassTurnPanel()
	c := p.Mount(scopeFor(a, combat))

	buttons, err := p.(component.ButtonSource).Buttons(context.Background())
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	require.NoError(t, p.Render(context.Background()))

	p.(component.VisibilityUpdater).UpdateVisibility()
	assert.True(t, c.Hidden())

	combat.CurrentTokenID = "tok-aria"
	p.(component.VisibilityUpdater).UpdateVisibility()
	assert.False(t, c.Hidden())
	require.Len(t, c.Children(), 1)
	assert.Equal(t, "End Turn", c.Children()[0].Lines()[0].Text)
}

func TestPortraitAndWeaponSets(t *testing.T) {
	a := testActor()
	scope := scopeFor(a, nil)

	p := NewPortraitPanel()
	pc := p.Mount(scope)
	require.NoError(t, p.Render(context.Background()))
	assert.Equal(t, []string{"Aria", "██████████", "HP 20/20"}, texts(pc))

	a.HP = 4
	require.NoError(t, p.Render(context.Background()))
	assert.Equal(t, "██░░░░░░░░", pc.Lines()[1].Text)
	assert.Equal(t, component.ToneAlert, pc.Lines()[2].Tone)

	w := NewWeaponSets()
	wc := w.Mount(scope)
	require.NoError(t, w.Render(context.Background()))
	assert.Equal(t, " 1 [2] 3 ", wc.Lines()[1].Text)

	a.WeaponSet = 9
	assert.Equal(t, 1, w.(*WeaponSets).Active())
}

func TestDrawerToggle(t *testing.T) {
	d := NewDrawerPanel().(*DrawerPanel)
	c := d.Mount(scopeFor(testActor(), nil))
	require.NoError(t, d.Render(context.Background()))
	assert.Equal(t, []string{"Items (3)"}, texts(c))

	require.NoError(t, d.Toggle(context.Background()))
	assert.Equal(t, []string{"Items (3)", "*Sword", " Potion", " Wand"}, texts(c))

	d.Collapse()
	assert.True(t, c.Collapsed())
	assert.Len(t, c.Lines(), 1)
}
