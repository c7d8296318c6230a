package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/argon-hud/config"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/hud"
	"github.com/lixenwraith/argon-hud/notify"
	"github.com/lixenwraith/argon-hud/prefab"
)

type demo struct {
	hud    *hud.HUD
	world  *world
	canvas *host.Memory
	banner *notify.Banner
}

func newDemo(t *testing.T) *demo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	canvas := host.NewMemory()
	canvas.Activate(hud.ModulePrefix + "dnd5e")
	banner := notify.NewBanner(logger)

	h := hud.New(hud.Options{
		Registry: newRegistry(),
		Settings: config.NewStore(config.Default()),
		Ambient:  canvas,
		Modules:  canvas,
		Canvas:   canvas,
		Notifier: banner,
		Logger:   logger,
		SystemID: "dnd5e",
	})
	bus := events.NewBus()
	t.Cleanup(h.Attach(bus))
	return &demo{hud: h, world: newWorld(bus, canvas), canvas: canvas, banner: banner}
}

func TestWorldCombatLifecycle(t *testing.T) {
	d := newDemo(t)
	require.NoError(t, d.hud.Bind(hud.TokenTarget(d.world.token)))

	d.world.startCombat()
	assert.Equal(t, 1, d.hud.DispatchPending())
	assert.Same(t, d.world.combat, d.hud.Combat())

	d.world.nextRound()
	d.world.move(1, 0)
	assert.Equal(t, 2, d.hud.DispatchPending())

	d.world.endCombat()
	d.hud.DispatchPending()
	assert.Nil(t, d.hud.Combat())
}

func TestWorldItemUseRerendersButtons(t *testing.T) {
	d := newDemo(t)
	require.NoError(t, d.hud.Bind(hud.ActorTarget(d.world.aria)))

	buttons := d.hud.Tree().ItemButtons("healing")
	require.NotEmpty(t, buttons)
	btn, ok := buttons[0].(*prefab.ItemButton)
	require.True(t, ok)
	before := btn.Renders()

	msg, ok := d.world.useItem(d.world.aria)
	require.True(t, ok)
	assert.Equal(t, "Healing Potion used (1 left)", msg)
	d.hud.DispatchPending()
	assert.Greater(t, btn.Renders(), before)
	assert.Equal(t, "Healing Potion 1/2", btn.Container().Lines()[0].Text)
}

func TestHandleRuneBindings(t *testing.T) {
	d := newDemo(t)

	assert.True(t, handleRune('1', d.hud, d.world, d.banner))
	actor, token := d.hud.Subject()
	assert.Same(t, d.world.aria, actor)
	assert.Same(t, d.world.token, token)
	assert.True(t, d.canvas.Hidden(host.ElementHotbar))

	handleRune('2', d.hud, d.world, d.banner)
	actor, token = d.hud.Subject()
	assert.Same(t, d.world.bram, actor)
	assert.Nil(t, token)
	assert.Nil(t, d.hud.Tree().Movement, "no movement indicator without presence")

	handleRune('u', d.hud, d.world, d.banner)
	assert.Equal(t, hud.Detached, d.hud.State())
	assert.False(t, d.canvas.Hidden(host.ElementHotbar))

	assert.False(t, handleRune('q', d.hud, d.world, d.banner))
}

func TestSelectTokenAlwaysOn(t *testing.T) {
	d := newDemo(t)
	d.world.selectToken()
	d.hud.DispatchPending()
	assert.Equal(t, hud.Detached, d.hud.State(), "always-on is off by default")
	assert.Len(t, d.canvas.Controlled(), 1)
}
