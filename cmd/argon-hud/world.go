package main

import (
	"fmt"

	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/model"
)

// world is a small scene standing in for the host application
// Every mutation is announced on the bus the way the host would
type world struct {
	bus    *events.Bus
	canvas *host.Memory

	aria  *model.Actor
	bram  *model.Actor
	token *model.Token

	combat *model.Combat
}

func newWorld(bus *events.Bus, canvas *host.Memory) *world {
	aria := &model.Actor{ID: "aria", Name: "Aria Vance", HP: 27, MaxHP: 31, Speed: 6, WeaponSet: 1}
	aria.Items = []*model.Item{
		{ID: "longsword", Name: "Longsword", Equipped: true, Owner: aria},
		{ID: "shortbow", Name: "Shortbow", Owner: aria},
		{ID: "healing", Name: "Healing Potion", Uses: 2, MaxUses: 2, Owner: aria},
		{ID: "second-wind", Name: "Second Wind", Uses: 1, MaxUses: 1, Owner: aria},
	}
	token := &model.Token{ID: "tok-aria", Name: "Aria", X: 4, Y: 4, Actor: aria}
	aria.ActiveTokens = []*model.Token{token}

	// Bram has no presence on the scene
	bram := &model.Actor{ID: "bram", Name: "Bram Osk", HP: 18, MaxHP: 18, Speed: 5}
	bram.Items = []*model.Item{
		{ID: "staff", Name: "Quarterstaff", Equipped: true, Owner: bram},
		{ID: "scroll", Name: "Scroll of Light", Uses: 1, MaxUses: 1, Owner: bram},
	}

	canvas.SetDefaultToken(token)
	return &world{bus: bus, canvas: canvas, aria: aria, bram: bram, token: token}
}

func (w *world) startCombat() {
	if w.combat != nil {
		return
	}
	w.combat = &model.Combat{ID: "encounter-1", Round: 1, CurrentTokenID: w.token.ID}
	w.canvas.SetCombat(w.combat)
	w.bus.Emit(events.EventCombatStarted, &events.CombatPayload{Combat: w.combat})
}

func (w *world) nextRound() {
	if w.combat == nil {
		return
	}
	w.combat.Round++
	w.bus.Emit(events.EventCombatUpdated, &events.CombatPayload{
		Combat:  w.combat,
		Changes: events.Changes{"round": w.combat.Round},
	})
}

// passTurn toggles whether the token holds the turn
func (w *world) passTurn() {
	if w.combat == nil {
		return
	}
	if w.combat.CurrentTokenID == w.token.ID {
		w.combat.CurrentTokenID = ""
	} else {
		w.combat.CurrentTokenID = w.token.ID
	}
	w.combat.Turn++
	w.bus.Emit(events.EventCombatUpdated, &events.CombatPayload{
		Combat:  w.combat,
		Changes: events.Changes{"turn": w.combat.Turn},
	})
}

func (w *world) endCombat() {
	if w.combat == nil {
		return
	}
	ended := w.combat
	w.combat = nil
	w.canvas.SetCombat(nil)
	w.bus.Emit(events.EventCombatEnded, &events.CombatPayload{Combat: ended})
}

func (w *world) move(dx, dy int) {
	w.token.X += dx
	w.token.Y += dy
	w.bus.Emit(events.EventTokenUpdated, &events.TokenUpdatedPayload{
		Token:   w.token,
		Changes: events.Changes{"x": w.token.X, "y": w.token.Y},
	})
}

// useItem spends a use of the first limited item of actor that has one left
func (w *world) useItem(actor *model.Actor) (string, bool) {
	if actor == nil {
		return "", false
	}
	for _, it := range actor.Items {
		if it.MaxUses > 0 && it.Uses > 0 {
			it.Uses--
			w.bus.Emit(events.EventItemUpdated, &events.ItemUpdatedPayload{
				Item:    it,
				Changes: events.Changes{"uses": it.Uses},
			})
			if it.Uses == 0 {
				w.bus.Emit(events.EventActionSetChanged, nil)
			}
			return fmt.Sprintf("%s used (%d left)", it.Name, it.Uses), true
		}
	}
	return "", false
}

func (w *world) hurt(actor *model.Actor, dmg int) {
	if actor == nil {
		return
	}
	actor.HP -= dmg
	if actor.HP < 0 {
		actor.HP = 0
	}
	w.bus.Emit(events.EventActorUpdated, &events.ActorUpdatedPayload{
		Actor:   actor,
		Changes: events.Changes{"hp": actor.HP},
	})
}

func (w *world) selectToken() {
	w.canvas.Control(w.token)
	w.bus.Emit(events.EventTokenControlled, &events.TokenControlledPayload{Token: w.token, Controlled: true})
}
