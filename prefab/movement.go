package prefab

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/model"
)

// MovementHud tracks squares moved by the bound token during the current round
type MovementHud struct {
	component.Base

	mu       sync.Mutex
	moved    int
	x, y     int
	round    int
	inCombat bool
}

// NewMovementHud is the default movement indicator factory
func NewMovementHud() component.Component {
	return &MovementHud{}
}

// Mount implements component.Component
func (m *MovementHud) Mount(scope *component.Scope) *component.Container {
	c := m.Init(scope, "movement")
	if t := scope.Token(); t != nil {
		m.x, m.y = t.X, t.Y
	}
	if combat := scope.Combat(); combat != nil {
		m.inCombat = true
		m.round = combat.Round
	}
	return c
}

// Moved returns squares moved this round
func (m *MovementHud) Moved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moved
}

// Render implements component.Component
func (m *MovementHud) Render(ctx context.Context) error {
	speed := 0
	if a := m.Scope().Actor(); a != nil {
		speed = a.Speed
	}

	m.mu.Lock()
	moved, inCombat, round := m.moved, m.inCombat, m.round
	m.mu.Unlock()

	tone := component.ToneDefault
	if speed > 0 && moved > speed {
		tone = component.ToneAlert
	}
	header := "Move"
	if inCombat {
		header = fmt.Sprintf("Move R%d", round)
	}
	return m.Commit(
		component.Line{Text: header, Tone: component.ToneMuted},
		component.Line{Text: fmt.Sprintf("%d/%d", moved, speed), Tone: tone},
	)
}

// NewRound resets the movement budget
func (m *MovementHud) NewRound(combat *model.Combat) {
	m.mu.Lock()
	m.moved = 0
	m.inCombat = true
	if combat != nil {
		m.round = combat.Round
	}
	m.syncPosition()
	m.mu.Unlock()
	m.rerender()
}

// CombatEnd clears encounter tracking
func (m *MovementHud) CombatEnd(combat *model.Combat) {
	m.mu.Lock()
	m.moved = 0
	m.inCombat = false
	m.round = 0
	m.syncPosition()
	m.mu.Unlock()
	m.rerender()
}

// PresenceUpdate accumulates grid distance from token position changes
func (m *MovementHud) PresenceUpdate(changes events.Changes) {
	m.mu.Lock()
	nx, okX := changes.Int("x")
	ny, okY := changes.Int("y")
	if !okX && !okY {
		m.mu.Unlock()
		return
	}
	if !okX {
		nx = m.x
	}
	if !okY {
		ny = m.y
	}
	m.moved += chebyshev(nx-m.x, ny-m.y)
	m.x, m.y = nx, ny
	m.mu.Unlock()
	m.rerender()
}

// syncPosition re-reads the token position; caller holds mu
func (m *MovementHud) syncPosition() {
	if s := m.Scope(); s != nil {
		if t := s.Token(); t != nil {
			m.x, m.y = t.X, t.Y
		}
	}
}

func (m *MovementHud) rerender() {
	s := m.Scope()
	if s == nil {
		return
	}
	if err := m.Render(s.Context()); err != nil && !errors.Is(err, component.ErrStaleBuild) {
		s.Logger().Warn("movement render failed", "error", err)
	}
}

// chebyshev is grid distance with diagonal moves costing one square
func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
