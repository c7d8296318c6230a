package hud

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/config"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/model"
	"github.com/lixenwraith/argon-hud/prefab"
	"github.com/lixenwraith/argon-hud/registry"
	"github.com/lixenwraith/argon-hud/status"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu     sync.Mutex
	errors []string
	perm   []bool
}

func (n *recordingNotifier) Info(string) {}

func (n *recordingNotifier) Error(msg string, permanent bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
	n.perm = append(n.perm, permanent)
}

type fixture struct {
	hud      *HUD
	reg      *registry.Registry
	store    *config.Store
	host     *host.Memory
	status   *status.Registry
	notifier *recordingNotifier
}

// newFixture builds a HUD with the stock prefab portrait and drawer registered
func newFixture(mutate func(*config.Settings), panels ...registry.MainPanel) *fixture {
	s := config.Default()
	if mutate != nil {
		mutate(&s)
	}
	f := &fixture{
		reg:      registry.New(),
		store:    config.NewStore(s),
		host:     host.NewMemory(),
		status:   status.NewRegistry(),
		notifier: &recordingNotifier{},
	}
	f.reg.SetPortrait(prefab.NewPortraitPanel)
	f.reg.SetDrawer(prefab.NewDrawerPanel)
	f.reg.AppendMain(panels...)
	f.hud = New(Options{
		Registry: f.reg,
		Settings: f.store,
		Ambient:  f.host,
		Modules:  f.host,
		Canvas:   f.host,
		Notifier: f.notifier,
		Status:   f.status,
		Logger:   quietLogger(),
	})
	return f
}

// newActor creates an actor owning the named items, optionally placed on the scene
func newActor(id string, placed bool, itemIDs ...string) *model.Actor {
	a := &model.Actor{ID: id, Name: "Actor " + id, HP: 20, MaxHP: 20, Speed: 6}
	for _, itemID := range itemIDs {
		a.Items = append(a.Items, &model.Item{ID: itemID, Name: itemID, Owner: a})
	}
	if placed {
		a.ActiveTokens = []*model.Token{{ID: "tok-" + id, Name: "Token " + id, Actor: a}}
	}
	return a
}

// fakePanel is a scriptable main panel
type fakePanel struct {
	component.Base
	buttons   int
	noSource  bool
	fetchErr  error
	renderErr error
	panics    bool
	gate      <-chan struct{}
	entered   chan<- struct{}
	commitErr atomic.Value
	renders   atomic.Int64
	visChecks atomic.Int64
}

func (p *fakePanel) Mount(scope *component.Scope) *component.Container {
	return p.Init(scope, "fake")
}

func (p *fakePanel) Buttons(ctx context.Context) ([]component.Component, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	out := make([]component.Component, 0, p.buttons)
	for i := 0; i < p.buttons; i++ {
		b := prefab.NewActionButton("b")
		p.Container().AppendChild(b.Mount(p.Scope()))
		out = append(out, b)
	}
	return out, nil
}

func (p *fakePanel) Render(ctx context.Context) error {
	p.renders.Add(1)
	if p.panics {
		panic("boom")
	}
	if p.renderErr != nil {
		return p.renderErr
	}
	if p.gate != nil {
		if p.entered != nil {
			p.entered <- struct{}{}
		}
		<-p.gate
	}
	err := p.Commit(component.Line{Text: "fake"})
	if err != nil {
		p.commitErr.Store(err)
	}
	return err
}

func (p *fakePanel) UpdateVisibility() {
	p.visChecks.Add(1)
}

// panelRecorder hands out fakePanels and keeps them for inspection
type panelRecorder struct {
	mu     sync.Mutex
	made   []*fakePanel
	script func() *fakePanel
}

func (r *panelRecorder) factory() component.Factory {
	return func() component.Component {
		p := r.script()
		r.mu.Lock()
		r.made = append(r.made, p)
		r.mu.Unlock()
		if p.noSource {
			return &noSourcePanel{fakePanel: p}
		}
		return p
	}
}

func (r *panelRecorder) all() []*fakePanel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*fakePanel(nil), r.made...)
}

// noSourcePanel exposes the lifecycle but not Buttons
type noSourcePanel struct {
	fakePanel *fakePanel
}

func (n *noSourcePanel) Mount(s *component.Scope) *component.Container {
	return n.fakePanel.Mount(s)
}

func (n *noSourcePanel) Render(ctx context.Context) error {
	return n.fakePanel.Render(ctx)
}

func (n *noSourcePanel) Teardown() {
	n.fakePanel.Teardown()
}

var errFake = errors.New("fake failure")
