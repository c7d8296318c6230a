package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/argon-hud/config"
	"github.com/lixenwraith/argon-hud/events"
	"github.com/lixenwraith/argon-hud/host"
	"github.com/lixenwraith/argon-hud/hud"
	"github.com/lixenwraith/argon-hud/notify"
	"github.com/lixenwraith/argon-hud/prefab"
	"github.com/lixenwraith/argon-hud/registry"
	"github.com/lixenwraith/argon-hud/render"
	"github.com/lixenwraith/argon-hud/status"
	"github.com/lixenwraith/argon-hud/theme"
)

// Config holds the command line configuration
type Config struct {
	Debug      bool
	ConfigPath string
	System     string
	NoAdapter  bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "argon-hud [flags]",
		Short: "Terminal action HUD demo",
		Long: `argon-hud binds an action HUD to a small demo scene and draws it in the terminal.
Keys: 1/2 bind actor, t bind token, u unbind, c/r/e combat, n pass turn, i use item,
h hurt, arrows move, s select token, d drawer, m minimize, p collapse, q quit.`,
		Example: `  # Run with the default settings file
  argon-hud

  # Debug logging to logs/argon-hud.log with the metrics line shown
  argon-hud -d --config ./hud.toml

  # Run without the system adapter module to see the degraded HUD
  argon-hud --no-adapter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging and the metrics line")
	rootCmd.Flags().StringVarP(&cfg.ConfigPath, "config", "c", "argon-hud.toml", "Settings file, reloaded on change")
	rootCmd.Flags().StringVar(&cfg.System, "system", "dnd5e", "Game system identifier")
	rootCmd.Flags().BoolVar(&cfg.NoAdapter, "no-adapter", false, "Leave the system adapter module inactive")

	rootCmd.AddCommand(themesCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in theme presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.NewLoader().Presets() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg Config) error {
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := config.NewStore(config.Default())
	if err := store.Load(cfg.ConfigPath); err != nil {
		return err
	}

	canvas := host.NewMemory()
	if !cfg.NoAdapter {
		canvas.Activate(hud.ModulePrefix + cfg.System)
	}

	reg := newRegistry()
	banner := notify.NewBanner(slog.Default())
	metrics := status.NewRegistry()
	redraw := make(chan struct{}, 1)
	requestRedraw := func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	}

	h := hud.New(hud.Options{
		Registry: reg,
		Settings: store,
		Ambient:  canvas,
		Modules:  canvas,
		Canvas:   canvas,
		Notifier: banner,
		Status:   metrics,
		Logger:   slog.Default(),
		SystemID: cfg.System,
		OnChange: requestRedraw,
	})

	bus := events.NewBus()
	detach := h.Attach(bus)
	defer detach()
	w := newWorld(bus, canvas)

	if err := store.Watch(ctx, cfg.ConfigPath, func(config.Settings) {
		h.ApplyTheme()
		h.SetPosition()
		requestRedraw()
	}); err != nil {
		slog.Warn("settings watch disabled", "error", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	setCrashScreen(screen)
	defer func() {
		if r := recover(); r != nil {
			handleCrash(r)
		}
		screen.Fini()
	}()

	orchestrator := render.NewOrchestrator(screen, h.Palette)
	orchestrator.Register(render.NewHudRenderer(h), render.PriorityHUD)
	orchestrator.Register(render.NewBannerRenderer(banner), render.PriorityOverlay)
	orchestrator.Register(render.NewStatusRenderer(metrics.Line, cfg.Debug), render.PriorityDebug)
	h.Resize(orchestrator.Resize())

	eventChan := make(chan tcell.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case eventChan <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	}))
	defer func() {
		// PollEvent returns nil once the screen is finalized
		screen.Fini()
		cancel()
		_ = g.Wait()
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	orchestrator.RenderFrame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.Resize(orchestrator.Resize())
			case *tcell.EventKey:
				if !handleKey(ev, h, w, banner) {
					return nil
				}
			}
		case <-redraw:
		case <-ticker.C:
		}
		h.DispatchPending()
		orchestrator.RenderFrame()
	}
}

// newRegistry registers the panels a system adapter would provide
func newRegistry() *registry.Registry {
	reg := registry.New()
	reg.SetPortrait(prefab.NewPortraitPanel)
	reg.SetDrawer(prefab.NewDrawerPanel)
	reg.AppendMain(
		registry.MainPanel{Name: "actions", Factory: prefab.NewActionPanel("Actions", prefab.AllUsable)},
		registry.MainPanel{Name: "equipment", Factory: prefab.NewActionPanel("Equipped", prefab.EquippedOnly)},
		registry.MainPanel{Name: "passTurn", Factory: prefab.NewPassTurnPanel, CombatView: true},
	)
	return reg
}

// handleKey applies one key press; false requests exit
func handleKey(ev *tcell.EventKey, h *hud.HUD, w *world, n notify.Notifier) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		w.move(0, -1)
	case tcell.KeyDown:
		w.move(0, 1)
	case tcell.KeyLeft:
		w.move(-1, 0)
	case tcell.KeyRight:
		w.move(1, 0)
	case tcell.KeyRune:
		return handleRune(ev.Rune(), h, w, n)
	}
	return true
}

func handleRune(r rune, h *hud.HUD, w *world, n notify.Notifier) bool {
	bind := func(t hud.Target) {
		if err := h.Bind(t); err != nil {
			n.Error(err.Error(), false)
		}
	}

	switch r {
	case 'q':
		return false
	case '1':
		bind(hud.ActorTarget(w.aria))
	case '2':
		bind(hud.ActorTarget(w.bram))
	case 't':
		bind(hud.TokenTarget(w.token))
	case 'u':
		h.Unbind()
	case 'c':
		w.startCombat()
	case 'r':
		w.nextRound()
	case 'n':
		w.passTurn()
	case 'e':
		w.endCombat()
	case 'i':
		actor, _ := h.Subject()
		if msg, ok := w.useItem(actor); ok {
			n.Info(msg)
		}
	case 'h':
		actor, _ := h.Subject()
		w.hurt(actor, 3)
	case 's':
		w.selectToken()
	case 'd':
		h.ToggleDrawer()
	case 'm':
		h.ToggleMinimize(nil)
	case 'p':
		h.CollapseAllPanels()
	}
	return true
}
