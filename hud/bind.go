package hud

import (
	"context"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/layout"
	"github.com/lixenwraith/argon-hud/model"
)

// Bind attaches the HUD to target and blocks until the build settles
// NoTarget detaches. Rebinding the same subject always rebuilds.
func (h *HUD) Bind(t Target) error {
	done, err := h.BindAsync(t)
	if err != nil {
		return err
	}
	<-done
	return nil
}

// BindAsync attaches the HUD to target and returns once the build has started
// The returned channel closes when the build settles or is superseded
func (h *HUD) BindAsync(t Target) (<-chan struct{}, error) {
	if t.IsNone() {
		h.Unbind()
		done := make(chan struct{})
		close(done)
		return done, nil
	}

	actor, token, err := t.resolve()
	if err != nil {
		return nil, err
	}
	if actor == nil {
		h.log.Error("binding without actor", "token", token.ID, "error", ErrMissingEntity)
	}

	return h.bindSubject(actor, token, 0), nil
}

// bindSubject starts a build for the resolved subject
// A non-zero expect makes it a no-op unless expect is still the current generation
func (h *HUD) bindSubject(actor *model.Actor, token *model.Token, expect uint64) <-chan struct{} {
	done := make(chan struct{})
	h.mu.Lock()
	if expect != 0 && !h.isCurrent(expect) {
		h.mu.Unlock()
		close(done)
		return done
	}
	h.state = Bound
	h.actor = actor
	h.token = token
	h.visible = true
	gen, ctx, release := h.beginBuild(false)
	h.mu.Unlock()
	release()

	h.publishSubject(gen, true, subjectName(actor, token))
	h.log.Info("bound", "actor", subjectName(actor, nil), "token", subjectName(nil, token), "generation", gen)

	go func() {
		defer close(done)
		h.compose(ctx, gen, actor, token)
	}()
	return done
}

// Unbind detaches the HUD, restores ambient UI and discards the tree
func (h *HUD) Unbind() {
	h.mu.Lock()
	gen, _, release := h.beginBuild(true)
	wasBound := h.state == Bound
	h.state = Detached
	h.actor = nil
	h.token = nil
	h.visible = false
	h.mu.Unlock()
	release()

	h.publishSubject(gen, false, "")
	if wasBound {
		h.log.Info("unbound")
	}
	h.changed()
}

// publishSubject applies the status and ambient UI of generation gen
// Nothing changes once gen is superseded; the newer bind or unbind owns them
func (h *HUD) publishSubject(gen uint64, bound bool, name string) {
	h.ambientMu.Lock()
	defer h.ambientMu.Unlock()
	if !h.isCurrent(gen) {
		return
	}
	h.bound.Store(bound)
	h.subject.Store(name)
	h.toggleAmbient(bound)
}

// toggleAmbient hides competing host UI while the HUD is shown
// Callers hold ambientMu. With hiding disabled in settings the elements are always restored
func (h *HUD) toggleAmbient(hide bool) {
	if h.opts.Ambient == nil {
		return
	}
	if !h.settings().HideMacroPlayers {
		hide = false
	}
	for _, el := range host.AmbientElements {
		h.opts.Ambient.SetHidden(el, hide)
	}
}

// ToggleMinimize flips the minimized state, or forces it when force is non-nil
func (h *HUD) ToggleMinimize(force *bool) bool {
	h.mu.Lock()
	if force != nil {
		h.minimized = *force
	} else {
		h.minimized = !h.minimized
	}
	m := h.minimized
	h.mu.Unlock()
	h.SetPosition()
	return m
}

// Resize records the screen size and re-places the HUD
func (h *HUD) Resize(w, ht int) {
	h.mu.Lock()
	h.screenW, h.screenH = w, ht
	h.mu.Unlock()
	h.SetPosition()
}

// SetPosition recomputes placement from settings and the measured tree
func (h *HUD) SetPosition() layout.Placement {
	s := h.settings()
	h.mu.Lock()
	in := layout.Input{
		BotPos:    s.BotPos,
		Scale:     s.Scale,
		Minimized: h.minimized,
		ScreenW:   h.screenW,
		ScreenH:   h.screenH,
	}
	if h.tree != nil {
		in.ContentW = h.tree.Root.Width()
		in.ContentH = h.tree.Root.Height()
	}
	h.placement = layout.Compute(in)
	p := h.placement
	h.mu.Unlock()
	h.changed()
	return p
}

// CollapseAllPanels collapses the drawer and every collapsible main panel
func (h *HUD) CollapseAllPanels() {
	tree := h.Tree()
	if tree == nil {
		return
	}
	collapse := func(c component.Component) {
		if cp, ok := c.(component.Collapsible); ok {
			cp.Collapse()
		}
	}
	if tree.Drawer != nil {
		collapse(tree.Drawer)
	}
	for _, m := range tree.Main {
		collapse(m.Component)
	}
	h.changed()
}

// ToggleDrawer expands or collapses the drawer; false when none is mounted
func (h *HUD) ToggleDrawer() bool {
	tree := h.Tree()
	if tree == nil || tree.Drawer == nil {
		return false
	}
	d, ok := tree.Drawer.(interface{ Toggle(context.Context) error })
	if !ok {
		return false
	}
	if err := d.Toggle(h.buildContext()); err != nil {
		h.log.Debug("drawer toggle failed", "error", err)
		return false
	}
	h.changed()
	return true
}

// UpdateItemButtons re-renders the buttons of the given items
func (h *HUD) UpdateItemButtons(items ...*model.Item) int {
	tree := h.Tree()
	if tree == nil {
		return 0
	}
	ctx := h.buildContext()
	n := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		for _, b := range tree.ItemButtons(it.ID) {
			h.renderOne(ctx, b)
			n++
		}
	}
	if n > 0 {
		h.changed()
	}
	return n
}

// ActionBarWidth returns the combined width of the mounted main panels
func (h *HUD) ActionBarWidth() int {
	tree := h.Tree()
	if tree == nil {
		return 0
	}
	w := 0
	for _, c := range tree.ActionHud.Children() {
		if !c.Hidden() {
			w += c.Width()
		}
	}
	return w
}

// buildContext returns the live build's context; cancelled when detached
func (h *HUD) buildContext() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.buildCtx == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return h.buildCtx
}

func subjectName(a *model.Actor, t *model.Token) string {
	switch {
	case a != nil:
		return a.Name
	case t != nil:
		return t.Name
	}
	return ""
}
