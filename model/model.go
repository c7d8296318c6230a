// Package model holds the host-side game data the HUD reads
// The host owns and mutates these values; the HUD only compares identities and reads fields
package model

// Actor is the logical subject displayed by the HUD
type Actor struct {
	ID    string
	Name  string
	HP    int
	MaxHP int
	Speed int // Squares per round

	Items []*Item

	// Token is the explicit presence of a synthetic (unlinked) actor
	Token *Token
	// Parent is the fallback presence, set when the actor is embedded in a token
	Parent *Token
	// ActiveTokens lists tokens currently placed on the scene for this actor
	ActiveTokens []*Token

	// WeaponSet is the active weapon set index, 1-based
	WeaponSet int
}

// Is reports identity equality; nil matches nil only
func (a *Actor) Is(other *Actor) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID
}

// ItemByID returns the owned item with the given ID
func (a *Actor) ItemByID(id string) (*Item, bool) {
	if a == nil {
		return nil, false
	}
	for _, it := range a.Items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Token is the on-screen, spatially located representation of an actor
type Token struct {
	ID    string
	Name  string
	X, Y  int
	Actor *Actor
}

// Is reports identity equality; nil matches nil only
func (t *Token) Is(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}

// Item is a usable object owned by an actor
type Item struct {
	ID       string
	Name     string
	Uses     int
	MaxUses  int
	Equipped bool
	Owner    *Actor
}

// Usable reports whether the item can back an action button
func (i *Item) Usable() bool {
	return i != nil && (i.MaxUses == 0 || i.Uses > 0)
}

// Combat is an encounter with initiative order
type Combat struct {
	ID    string
	Round int
	Turn  int
	// CurrentTokenID identifies the combatant whose turn it is
	CurrentTokenID string
}

// IsTurnOf reports whether the given token holds the current turn
func (c *Combat) IsTurnOf(t *Token) bool {
	return c != nil && t != nil && c.CurrentTokenID == t.ID
}
