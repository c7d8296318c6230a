// Package registry holds the role -> factory slots populated by system adapters at start-up
package registry

import (
	"sync"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/prefab"
)

// Role names a slot in the component tree
type Role string

const (
	RolePortrait   Role = "portrait"
	RoleDrawer     Role = "drawer"
	RoleWeaponSets Role = "weaponSets"
	RoleMovement   Role = "movement"
	RoleMain       Role = "main"
)

// MainPanel is a main-panel registration
type MainPanel struct {
	Name    string
	Factory component.Factory
	// CombatView marks panels whose visibility follows the encounter state
	CombatView bool
}

// Snapshot is an immutable copy of the registry read by the Composer at bind time
type Snapshot struct {
	Portrait   component.Factory
	Drawer     component.Factory
	WeaponSets component.Factory
	Movement   component.Factory
	Main       []MainPanel
}

// Singleton returns the factory registered for a singleton role
func (s Snapshot) Singleton(role Role) component.Factory {
	switch role {
	case RolePortrait:
		return s.Portrait
	case RoleDrawer:
		return s.Drawer
	case RoleWeaponSets:
		return s.WeaponSets
	case RoleMovement:
		return s.Movement
	}
	return nil
}

// Registry stores role factories
// Registration is expected before the first bind but tolerated at any time;
// no validation happens here, bad factories surface at bind time
type Registry struct {
	mu         sync.RWMutex
	portrait   component.Factory
	drawer     component.Factory
	weaponSets component.Factory
	movement   component.Factory
	main       []MainPanel
}

// New creates a registry with the default weapon-set and movement components
func New() *Registry {
	return &Registry{
		weaponSets: prefab.NewWeaponSets,
		movement:   prefab.NewMovementHud,
	}
}

// SetPortrait replaces the portrait factory
func (r *Registry) SetPortrait(f component.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.portrait = f
}

// SetDrawer replaces the drawer factory
func (r *Registry) SetDrawer(f component.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawer = f
}

// SetWeaponSets replaces the weapon-set selector factory
func (r *Registry) SetWeaponSets(f component.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weaponSets = f
}

// SetMovement replaces the movement indicator factory
func (r *Registry) SetMovement(f component.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movement = f
}

// AppendMain extends the main panel list; call order is display order
func (r *Registry) AppendMain(panels ...MainPanel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.main = append(r.main, panels...)
}

// MainCount returns the number of registered main panels
func (r *Registry) MainCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.main)
}

// Snapshot returns a copy safe to read without the lock
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Portrait:   r.portrait,
		Drawer:     r.drawer,
		WeaponSets: r.weaponSets,
		Movement:   r.movement,
		Main:       append([]MainPanel(nil), r.main...),
	}
}
