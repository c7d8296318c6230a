// Package host declares the host-application collaborators the HUD consumes
package host

import (
	"sync"

	"github.com/lixenwraith/argon-hud/model"
)

// Ambient host UI elements hidden while the HUD is shown
const (
	ElementHotbar  = "hotbar"
	ElementFPS     = "fps"
	ElementPlayers = "players"
)

// AmbientElements lists the elements toggled on bind/unbind
var AmbientElements = []string{ElementHotbar, ElementFPS, ElementPlayers}

// AmbientUI toggles visibility of competing host UI
type AmbientUI interface {
	SetHidden(element string, hidden bool)
}

// Modules reports which companion modules are active
type Modules interface {
	Active(id string) bool
}

// Canvas exposes the host's token selection
type Canvas interface {
	// Controlled returns currently selected tokens
	Controlled() []*model.Token
	// DefaultToken returns the user's assigned character token, if any
	DefaultToken() *model.Token
}

// Encounter is implemented by hosts that can report the running combat
// The HUD consults it when it has to resynchronize after lost events
type Encounter interface {
	ActiveCombat() *model.Combat
}

// Memory is an in-process host used by the CLI and tests
type Memory struct {
	mu         sync.RWMutex
	hidden     map[string]bool
	modules    map[string]bool
	controlled []*model.Token
	defaultTok *model.Token
	combat     *model.Combat
}

// NewMemory creates an empty host
func NewMemory() *Memory {
	return &Memory{
		hidden:  make(map[string]bool),
		modules: make(map[string]bool),
	}
}

// SetHidden implements AmbientUI
func (m *Memory) SetHidden(element string, hidden bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden[element] = hidden
}

// Hidden reports the visibility of an ambient element
func (m *Memory) Hidden(element string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hidden[element]
}

// Activate marks a module active
func (m *Memory) Activate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules[id] = true
}

// Active implements Modules
func (m *Memory) Active(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modules[id]
}

// Control replaces the selection
func (m *Memory) Control(tokens ...*model.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controlled = append([]*model.Token(nil), tokens...)
}

// Controlled implements Canvas
func (m *Memory) Controlled() []*model.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*model.Token(nil), m.controlled...)
}

// SetDefaultToken sets the user's character token
func (m *Memory) SetDefaultToken(t *model.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultTok = t
}

// DefaultToken implements Canvas
func (m *Memory) DefaultToken() *model.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultTok
}

// SetCombat records the running combat, nil when none
func (m *Memory) SetCombat(c *model.Combat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.combat = c
}

// ActiveCombat implements Encounter
func (m *Memory) ActiveCombat() *model.Combat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.combat
}
