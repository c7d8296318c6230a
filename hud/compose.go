package hud

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/model"
	"github.com/lixenwraith/argon-hud/registry"
)

// Container names of the two structural nodes
const (
	RootName      = "hud"
	ActionHudName = "action-hud"
)

// MainInstance is a main panel that yielded buttons and joined the tree
type MainInstance struct {
	Name       string
	Component  component.Component
	CombatView bool
}

// Tree is one composed build
// Structure is fixed once published; only the item index and Combat subset fill in afterwards
type Tree struct {
	Generation uint64
	Root       *component.Container
	ActionHud  *component.Container

	WeaponSets component.Component
	Portrait   component.Component
	Drawer     component.Component
	Movement   component.Component
	Main       []MainInstance

	mu       sync.RWMutex
	combat   []component.Component
	index    map[string][]component.Component
	all      []component.Component
	teardown sync.Once
}

func newTree(gen uint64, scope *component.Scope) *Tree {
	return &Tree{
		Generation: gen,
		Root:       scope.NewContainer(RootName),
		index:      make(map[string][]component.Component),
	}
}

// CombatPanels returns the main panels whose visibility follows the encounter
func (t *Tree) CombatPanels() []component.Component {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]component.Component(nil), t.combat...)
}

// ItemButtons returns the buttons representing itemID
func (t *Tree) ItemButtons(itemID string) []component.Component {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]component.Component(nil), t.index[itemID]...)
}

// IndexedItems returns the number of distinct items with buttons
func (t *Tree) IndexedItems() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.index)
}

// MainNames returns main panel names in display order
func (t *Tree) MainNames() []string {
	names := make([]string, len(t.Main))
	for i, m := range t.Main {
		names[i] = m.Name
	}
	return names
}

func (t *Tree) indexButton(itemID string, b component.Component) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.index[itemID] = append(t.index[itemID], b)
}

func (t *Tree) track(c component.Component) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = append(t.all, c)
}

func (t *Tree) setCombat(c []component.Component) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.combat = c
}

// release tears down every instance once
func (t *Tree) release() {
	t.teardown.Do(func() {
		t.mu.RLock()
		all := append([]component.Component(nil), t.all...)
		t.mu.RUnlock()
		for _, c := range all {
			safeTeardown(c)
		}
		t.Root.Detach()
	})
}

// beginBuild bumps the generation under mu and returns the cleanup of the superseded build
// With detach set no new build context is created
func (h *HUD) beginBuild(detach bool) (uint64, context.Context, func()) {
	gen := h.generation.Add(1)
	prevCancel, prevTree := h.cancel, h.tree
	h.tree = nil
	h.cancel, h.buildCtx = nil, nil

	var ctx context.Context
	if !detach {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		h.cancel, h.buildCtx = cancel, ctx
	}
	return gen, ctx, func() {
		if prevCancel != nil {
			prevCancel()
		}
		if prevTree != nil {
			prevTree.release()
		}
	}
}

// compose builds, mounts and renders a tree for the subject
// Returns nil if the build was superseded before it could publish
func (h *HUD) compose(ctx context.Context, gen uint64, actor *model.Actor, token *model.Token) *Tree {
	start := time.Now()
	h.builds.Add(1)
	snap := h.opts.Registry.Snapshot()

	h.mu.Lock()
	degraded := h.degraded
	h.mu.Unlock()

	scope := component.NewScope(component.ScopeConfig{
		Context:    ctx,
		Generation: gen,
		IsCurrent:  h.isCurrent,
		Actor:      actor,
		Token:      token,
		Settings:   h.settings,
		Combat:     h.Combat,
		Logger:     h.log,
	})
	tree := newTree(gen, scope)

	// Singletons, in display order; movement only with a presence
	tree.WeaponSets = h.mountRole(tree, scope, registry.RoleWeaponSets, snap.WeaponSets, tree.Root)
	tree.Portrait = h.mountRole(tree, scope, registry.RolePortrait, snap.Portrait, tree.Root)
	tree.Drawer = h.mountRole(tree, scope, registry.RoleDrawer, snap.Drawer, tree.Root)
	if token != nil {
		tree.Movement = h.mountRole(tree, scope, registry.RoleMovement, snap.Movement, tree.Root)
	}

	tree.ActionHud = scope.NewContainer(ActionHudName)
	tree.Root.AppendChild(tree.ActionHud)

	if !degraded {
		for _, panel := range snap.Main {
			if ctx.Err() != nil {
				break
			}
			h.mountMain(ctx, tree, scope, panel)
		}
	}

	if !h.publish(tree) {
		return nil
	}

	// Render everything concurrently; one failure never blocks the others
	tree.mu.RLock()
	instances := append([]component.Component(nil), tree.all...)
	tree.mu.RUnlock()

	var g errgroup.Group
	for _, c := range instances {
		g.Go(func() error {
			h.renderOne(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	if !h.isCurrent(gen) {
		h.buildsStale.Add(1)
		tree.release()
		return nil
	}

	var combat []component.Component
	for _, m := range tree.Main {
		updateVisibility(m.Component)
		if m.CombatView {
			combat = append(combat, m.Component)
		}
	}
	tree.setCombat(combat)

	if tree.Movement == nil {
		if p := containerOf(tree.Portrait); p != nil {
			p.SetMarginRight(0)
		}
	}

	h.buildMillis.Set(float64(time.Since(start).Microseconds()) / 1000)
	h.SetPosition()
	h.log.Debug("build settled", "generation", gen, "main", tree.MainNames(), "items", tree.IndexedItems())
	return tree
}

// publish makes tree the live tree unless a newer build started meanwhile
func (h *HUD) publish(tree *Tree) bool {
	h.mu.Lock()
	if !h.isCurrent(tree.Generation) {
		h.mu.Unlock()
		h.buildsStale.Add(1)
		tree.release()
		return false
	}
	h.tree = tree
	h.mu.Unlock()
	h.changed()
	return true
}

// mountRole constructs and mounts a singleton under parent; nil when the role is absent
func (h *HUD) mountRole(tree *Tree, scope *component.Scope, role registry.Role, f component.Factory, parent *component.Container) component.Component {
	if f == nil {
		return nil
	}
	c, err := construct(f)
	if err != nil {
		h.constructFailed.Add(1)
		h.log.Error("component skipped", "role", role, "error", err)
		return nil
	}
	cont, err := safeMount(c, scope)
	if err != nil {
		h.constructFailed.Add(1)
		h.log.Error("component skipped", "role", role, "error", err)
		return nil
	}
	tree.track(c)
	parent.AppendChild(cont)
	return c
}

// mountMain fetches a panel's buttons and mounts it only if it has any
func (h *HUD) mountMain(ctx context.Context, tree *Tree, scope *component.Scope, panel registry.MainPanel) {
	log := h.log.With("panel", panel.Name)
	if panel.Factory == nil {
		h.constructFailed.Add(1)
		log.Error("component skipped", "error", errors.Wrap(ErrComponentConstruct, "nil factory"))
		return
	}
	c, err := construct(panel.Factory)
	if err != nil {
		h.constructFailed.Add(1)
		log.Error("component skipped", "error", err)
		return
	}
	cont, err := safeMount(c, scope)
	if err != nil {
		h.constructFailed.Add(1)
		log.Error("component skipped", "error", err)
		return
	}

	src, ok := c.(component.ButtonSource)
	if !ok {
		log.Debug("panel has no button source, excluded")
		safeTeardown(c)
		return
	}
	buttons, err := fetchButtons(ctx, src)
	if err != nil {
		log.Warn("button fetch failed, panel excluded", "error", err)
		safeTeardown(c)
		return
	}
	if len(buttons) == 0 {
		log.Debug("panel has no buttons, excluded")
		safeTeardown(c)
		return
	}

	for _, b := range buttons {
		if ib, ok := b.(component.ItemBound); ok {
			if item := ib.Item(); item != nil {
				tree.indexButton(item.ID, b)
			}
		}
	}
	tree.track(c)
	tree.Main = append(tree.Main, MainInstance{Name: panel.Name, Component: c, CombatView: panel.CombatView})
	tree.ActionHud.AppendChild(cont)
}

// renderOne renders a component, logging and counting failures
func (h *HUD) renderOne(ctx context.Context, c component.Component) {
	err := safeRender(ctx, c)
	if err == nil {
		return
	}
	if errors.Is(err, ErrStaleBuild) {
		h.commitsStale.Add(1)
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	h.renderFailures.Add(1)
	name := ""
	if cont := containerOf(c); cont != nil {
		name = cont.Name()
	}
	h.log.Error("render failed", "component", name, "error", err)
}

func construct(f component.Factory) (c component.Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrComponentConstruct, "panic: %v", r)
		}
	}()
	c = f()
	if c == nil {
		return nil, errors.Wrap(ErrComponentConstruct, "factory returned nil")
	}
	return c, nil
}

func safeMount(c component.Component, scope *component.Scope) (cont *component.Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrComponentConstruct, "mount panic: %v", r)
		}
	}()
	cont = c.Mount(scope)
	if cont == nil {
		return nil, errors.Wrap(ErrComponentConstruct, "mount returned no container")
	}
	return cont, nil
}

func safeRender(ctx context.Context, c component.Component) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(ErrComponentRender, fmt.Sprintf("panic: %v", r))
		}
	}()
	if err := c.Render(ctx); err != nil {
		if errors.Is(err, ErrStaleBuild) || errors.Is(err, context.Canceled) {
			return err
		}
		return errors.Wrap(ErrComponentRender, err.Error())
	}
	return nil
}

func fetchButtons(ctx context.Context, src component.ButtonSource) (buttons []component.Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("button fetch panic: %v", r)
		}
	}()
	return src.Buttons(ctx)
}

func safeTeardown(c component.Component) {
	defer func() { _ = recover() }()
	c.Teardown()
}

func updateVisibility(c component.Component) {
	if v, ok := c.(component.VisibilityUpdater); ok {
		defer func() { _ = recover() }()
		v.UpdateVisibility()
	}
}

// containerOf returns the container of components embedding component.Base
func containerOf(c component.Component) *component.Container {
	if c == nil {
		return nil
	}
	if b, ok := c.(interface{ Container() *component.Container }); ok {
		return b.Container()
	}
	return nil
}
