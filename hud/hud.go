// Package hud coordinates the action HUD: binding to a subject, composing the component tree,
// and routing host events to the components that care about them
package hud

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lixenwraith/argon-hud/component"
	"github.com/lixenwraith/argon-hud/config"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/layout"
	"github.com/lixenwraith/argon-hud/model"
	"github.com/lixenwraith/argon-hud/notify"
	"github.com/lixenwraith/argon-hud/registry"
	"github.com/lixenwraith/argon-hud/status"
	"github.com/lixenwraith/argon-hud/theme"
)

// ModulePrefix prefixes the system adapter module ID
const ModulePrefix = "enhancedcombathud-"

// MsgModuleNotActive is the localization key for the missing adapter notice
const MsgModuleNotActive = "enhancedcombathud.err.moduleNotActive"

var defaultStrings = map[string]string{
	MsgModuleNotActive: "System adapter module %m is not active; the HUD has no panels",
}

// State is the binder state
type State uint8

const (
	Detached State = iota
	Bound
)

func (s State) String() string {
	if s == Bound {
		return "bound"
	}
	return "detached"
}

// Options wires the HUD to its collaborators
// Nil collaborators are replaced with inert defaults
type Options struct {
	Registry *registry.Registry
	Settings config.Source
	Ambient  host.AmbientUI
	Modules  host.Modules
	Canvas   host.Canvas
	Notifier notify.Notifier
	Themes   *theme.Loader
	Status   *status.Registry
	Logger   *slog.Logger
	// SystemID names the game system; its adapter module is ModulePrefix+SystemID
	SystemID string
	// Localize maps message keys to user text
	Localize func(key string) string
	// OnChange is called after anything visible changed; must not block
	OnChange func()
}

// HUD is the single per-session coordinator
// State is guarded by mu; renders and host callbacks run outside the lock
type HUD struct {
	opts Options
	log  *slog.Logger

	mu        sync.Mutex
	state     State
	actor     *model.Actor
	token     *model.Token
	visible   bool
	minimized bool
	degraded  bool
	tree      *Tree
	cancel    context.CancelFunc
	buildCtx  context.Context
	combat    *model.Combat
	palette   *theme.Palette
	placement layout.Placement
	screenW   int
	screenH   int

	// Build generation; bumped on every bind and unbind
	generation atomic.Uint64

	// Serializes ambient UI and subject status so only the current generation applies them
	ambientMu sync.Mutex

	queue  *events.Queue
	router *events.Router[*HUD]
	wake   chan struct{}
	// Set when the queue lost events; the next dispatch rebuilds the subject
	resyncDue atomic.Bool

	builds          *atomic.Int64
	buildsStale     *atomic.Int64
	renderFailures  *atomic.Int64
	commitsStale    *atomic.Int64
	constructFailed *atomic.Int64
	eventsHandled   *atomic.Int64
	eventsFiltered  *atomic.Int64
	eventsDropped   *atomic.Int64
	resyncs         *atomic.Int64
	bound           *atomic.Bool
	subject         *status.AtomicString
	buildMillis     *status.AtomicFloat
}

// New creates a detached HUD, verifies the system adapter and loads the theme
func New(opts Options) *HUD {
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Settings == nil {
		opts.Settings = config.NewStore(config.Default())
	}
	if opts.Themes == nil {
		opts.Themes = theme.NewLoader()
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &HUD{
		opts:    opts,
		log:     opts.Logger.With("component", "hud"),
		palette: theme.Default(),
		wake:    make(chan struct{}, 1),
	}

	h.builds = opts.Status.Ints.Get(status.Builds)
	h.buildsStale = opts.Status.Ints.Get(status.BuildsStale)
	h.renderFailures = opts.Status.Ints.Get(status.RenderFailures)
	h.commitsStale = opts.Status.Ints.Get(status.CommitsStale)
	h.constructFailed = opts.Status.Ints.Get(status.ConstructFailed)
	h.eventsHandled = opts.Status.Ints.Get(status.EventsHandled)
	h.eventsFiltered = opts.Status.Ints.Get(status.EventsFiltered)
	h.eventsDropped = opts.Status.Ints.Get(status.EventsDropped)
	h.resyncs = opts.Status.Ints.Get(status.Resyncs)
	h.bound = opts.Status.Bools.Get(status.Bound)
	h.subject = opts.Status.Strings.Get(status.Subject)
	h.buildMillis = opts.Status.Floats.Get(status.BuildMillis)

	h.queue = events.NewQueue()
	h.router = events.NewRouter[*HUD](h.queue)
	for _, r := range routes {
		h.router.Register(r)
	}

	if err := h.CheckSystemModule(); err != nil {
		h.log.Warn("running degraded", "error", err)
	}
	h.ApplyTheme()
	return h
}

// CheckSystemModule verifies the system adapter module is active
// When it is not, a permanent notice is raised and binds compose no main panels
func (h *HUD) CheckSystemModule() error {
	if h.opts.Modules == nil || h.opts.SystemID == "" {
		return nil
	}
	id := ModulePrefix + h.opts.SystemID
	if h.opts.Modules.Active(id) {
		h.mu.Lock()
		h.degraded = false
		h.mu.Unlock()
		return nil
	}

	h.mu.Lock()
	h.degraded = true
	h.mu.Unlock()

	if h.opts.Notifier != nil {
		msg := strings.ReplaceAll(h.localize(MsgModuleNotActive), "%m", id)
		h.opts.Notifier.Error(msg, true)
	}
	return errors.Wrapf(ErrMissingSystemAdapter, "module %s", id)
}

// ApplyTheme loads the configured palette, falling back to the default on failure
func (h *HUD) ApplyTheme() *theme.Palette {
	s := h.opts.Settings.Get()
	p, err := h.opts.Themes.Load(s.Theme)
	if err != nil {
		h.log.Error("theme load failed, using default", "theme", s.Theme.Name, "error", err)
		p = theme.Default()
	}
	h.mu.Lock()
	h.palette = p
	h.mu.Unlock()
	h.changed()
	return p
}

func (h *HUD) localize(key string) string {
	if h.opts.Localize != nil {
		if s := h.opts.Localize(key); s != "" && s != key {
			return s
		}
	}
	if s, ok := defaultStrings[key]; ok {
		return s
	}
	return key
}

func (h *HUD) changed() {
	if h.opts.OnChange != nil {
		h.opts.OnChange()
	}
}

// State returns the binder state
func (h *HUD) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Subject returns the bound actor and token; both nil when detached
func (h *HUD) Subject() (*model.Actor, *model.Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.actor, h.token
}

// Visible reports whether the HUD is shown
func (h *HUD) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Minimized reports whether the HUD is collapsed below the screen edge
func (h *HUD) Minimized() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.minimized
}

// Degraded reports whether the system adapter is missing
func (h *HUD) Degraded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.degraded
}

// Combat returns the tracked encounter, nil outside combat
func (h *HUD) Combat() *model.Combat {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.combat
}

// Palette returns the active color palette
func (h *HUD) Palette() *theme.Palette {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.palette
}

// Placement returns the last computed placement
func (h *HUD) Placement() layout.Placement {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.placement
}

// Tree returns the published component tree, nil while detached or mid-bind
func (h *HUD) Tree() *Tree {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree
}

// Root returns the root container of the published tree, nil when there is none
func (h *HUD) Root() *component.Container {
	if tree := h.Tree(); tree != nil {
		return tree.Root
	}
	return nil
}

// Generation returns the current build generation
func (h *HUD) Generation() uint64 {
	return h.generation.Load()
}

func (h *HUD) isCurrent(gen uint64) bool {
	return h.generation.Load() == gen
}

func (h *HUD) settings() config.Settings {
	return h.opts.Settings.Get()
}
