package hud

import (
	"context"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/model"
)

// route binds one host event type to an optional filter and an action
// Actions resolve components against the published tree; roles not yet mounted are skipped
type route struct {
	typ    events.EventType
	filter func(h *HUD, ev events.Event) bool
	action func(h *HUD, tree *Tree, ev events.Event)
}

// HandleEvent implements events.Handler
func (r route) HandleEvent(h *HUD, ev events.Event) {
	if r.filter != nil && !r.filter(h, ev) {
		h.eventsFiltered.Add(1)
		return
	}
	h.eventsHandled.Add(1)
	r.action(h, h.Tree(), ev)
	h.changed()
}

// EventTypes implements events.Handler
func (r route) EventTypes() []events.EventType {
	return []events.EventType{r.typ}
}

var routes = []route{
	{typ: events.EventActionSetChanged, action: onActionSetChanged},
	{typ: events.EventItemUpdated, filter: ownedByBoundActor, action: onItemUpdated},
	{typ: events.EventCombatStarted, action: onCombatStarted},
	{typ: events.EventCombatUpdated, action: onCombatUpdated},
	{typ: events.EventCombatEnded, action: onCombatEnded},
	{typ: events.EventActorUpdated, filter: isBoundActor, action: onActorUpdated},
	{typ: events.EventTokenUpdated, filter: isBoundToken, action: onTokenUpdated},
	{typ: events.EventTokenControlled, filter: isControlled, action: onTokenControlled},
}

// Attach subscribes the HUD to emitter; events are queued for Run
// The returned func removes every subscription
func (h *HUD) Attach(emitter events.Emitter) func() {
	unsubs := make([]func(), 0, len(routes))
	for _, r := range routes {
		unsubs = append(unsubs, emitter.Subscribe(r.typ, h.Enqueue))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Enqueue queues an event for the dispatch loop
// If the queue is full the oldest event is lost and the next dispatch rebuilds the subject
func (h *HUD) Enqueue(ev events.Event) {
	if h.queue.Push(ev) {
		h.eventsDropped.Add(1)
		if !h.resyncDue.Swap(true) {
			h.log.Warn("event queue overflow, subject will be rebuilt", "capacity", events.QueueSize, "type", ev.Type.String())
		}
	}
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Dispatch routes an event synchronously
func (h *HUD) Dispatch(ev events.Event) {
	h.router.Dispatch(h, ev)
}

// Run drains queued events until ctx is done
func (h *HUD) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.DispatchPending()
			return ctx.Err()
		case <-h.wake:
			h.DispatchPending()
		}
	}
}

// DispatchPending routes every queued event on the calling goroutine
// For hosts that own a single-threaded loop instead of running Run
func (h *HUD) DispatchPending() int {
	n := h.router.DispatchAll(h)
	if h.resyncDue.Swap(false) {
		h.resync()
	}
	return n
}

// resync rebuilds the bound subject after queued events were lost
// Combat state is refreshed from the host when it can report it
func (h *HUD) resync() {
	if enc, ok := h.opts.Canvas.(host.Encounter); ok {
		h.setCombat(enc.ActiveCombat())
	}
	h.mu.Lock()
	state, actor, token := h.state, h.actor, h.token
	gen := h.generation.Load()
	h.mu.Unlock()
	if state != Bound {
		return
	}
	h.resyncs.Add(1)
	h.log.Info("resyncing subject", "generation", gen)
	h.bindSubject(actor, token, gen)
}

// Pending returns the number of queued events
func (h *HUD) Pending() int {
	return h.queue.Len()
}

// Filters

func ownedByBoundActor(h *HUD, ev events.Event) bool {
	p, ok := ev.Payload.(*events.ItemUpdatedPayload)
	if !ok || p.Item == nil || p.Item.Owner == nil {
		return false
	}
	actor, _ := h.Subject()
	return actor != nil && p.Item.Owner.Is(actor)
}

func isBoundActor(h *HUD, ev events.Event) bool {
	p, ok := ev.Payload.(*events.ActorUpdatedPayload)
	if !ok || p.Actor == nil {
		return false
	}
	actor, _ := h.Subject()
	return actor != nil && p.Actor.Is(actor)
}

func isBoundToken(h *HUD, ev events.Event) bool {
	p, ok := ev.Payload.(*events.TokenUpdatedPayload)
	if !ok || p.Token == nil {
		return false
	}
	_, token := h.Subject()
	return token != nil && p.Token.Is(token)
}

func isControlled(h *HUD, ev events.Event) bool {
	p, ok := ev.Payload.(*events.TokenControlledPayload)
	return ok && p.Token != nil && p.Controlled
}

// Actions

func onActionSetChanged(h *HUD, tree *Tree, _ events.Event) {
	if tree == nil {
		return
	}
	for _, m := range tree.Main {
		updateVisibility(m.Component)
	}
}

func onItemUpdated(h *HUD, _ *Tree, ev events.Event) {
	p := ev.Payload.(*events.ItemUpdatedPayload)
	h.UpdateItemButtons(p.Item)
}

func onCombatStarted(h *HUD, tree *Tree, ev events.Event) {
	combat := combatOf(ev)
	h.setCombat(combat)
	if mv := movementOf(tree); mv != nil {
		mv.NewRound(combat)
	}
	if !h.settings().OpenCombatStart || h.opts.Canvas == nil {
		return
	}

	var target *model.Token
	if controlled := h.opts.Canvas.Controlled(); len(controlled) > 0 {
		target = controlled[0]
	} else {
		target = h.opts.Canvas.DefaultToken()
	}
	if target == nil {
		return
	}
	if _, err := h.BindAsync(TokenTarget(target)); err != nil {
		h.log.Warn("combat start bind failed", "error", err)
	}
}

func onCombatUpdated(h *HUD, tree *Tree, ev events.Event) {
	combat := combatOf(ev)
	if combat != nil {
		h.setCombat(combat)
	}
	if tree == nil {
		return
	}
	for _, c := range tree.CombatPanels() {
		updateVisibility(c)
	}
	if p, ok := ev.Payload.(*events.CombatPayload); ok && p.Changes.Has("round") {
		if mv := movementOf(tree); mv != nil {
			mv.NewRound(combat)
		}
	}
}

func onCombatEnded(h *HUD, tree *Tree, ev events.Event) {
	combat := combatOf(ev)
	h.setCombat(nil)
	if mv := movementOf(tree); mv != nil {
		mv.CombatEnd(combat)
	}
	if tree != nil {
		for _, c := range tree.CombatPanels() {
			updateVisibility(c)
		}
	}
}

func onActorUpdated(h *HUD, tree *Tree, _ events.Event) {
	if tree == nil || tree.Portrait == nil {
		return
	}
	h.renderOne(h.buildContext(), tree.Portrait)
}

func onTokenUpdated(h *HUD, tree *Tree, ev events.Event) {
	p := ev.Payload.(*events.TokenUpdatedPayload)
	if mv := movementOf(tree); mv != nil {
		mv.PresenceUpdate(p.Changes)
	}
}

func onTokenControlled(h *HUD, _ *Tree, ev events.Event) {
	if !h.settings().AlwaysOn {
		return
	}
	p := ev.Payload.(*events.TokenControlledPayload)
	if _, err := h.BindAsync(TokenTarget(p.Token)); err != nil {
		h.log.Warn("always-on bind failed", "error", err)
	}
}

func (h *HUD) setCombat(c *model.Combat) {
	h.mu.Lock()
	h.combat = c
	h.mu.Unlock()
}

func combatOf(ev events.Event) *model.Combat {
	if p, ok := ev.Payload.(*events.CombatPayload); ok {
		return p.Combat
	}
	return nil
}

func movementOf(tree *Tree) component.MovementTracker {
	if tree == nil || tree.Movement == nil {
		return nil
	}
	mv, _ := tree.Movement.(component.MovementTracker)
	return mv
}
