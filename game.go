package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/ecs/entity"
	"github.com/milk9111/juggler/ecs/system"
	"github.com/milk9111/juggler/notify"
	"github.com/milk9111/juggler/prefabs"
)

// GameOptions wires a Game to its specs and to the outside world.
type GameOptions struct {
	Spec      *prefabs.GameSpec
	Theme     *prefabs.ThemeSpec
	ThemeName string

	// Notifier receives completion messages. It must not block; main passes
	// a notify.Dispatcher.
	Notifier notify.Notifier
	// Hook, when set, is swapped to a recompiled script on reload.
	Hook     *notify.Switch
	HookName string

	Reloads      <-chan string
	ReloadErrors <-chan error

	Pointer   system.PointerSource
	Clipboard Clipboard
	Debug     bool
}

type Game struct {
	cancel context.CancelFunc

	world    *ecs.World
	loop     *ecs.FrameLoop
	phase    *system.PhaseSystem
	renderer *system.RenderSystem
	notifier *system.NotifySystem
	ui       *menuUI

	spec      *prefabs.GameSpec
	theme     *prefabs.ThemeSpec
	themeName string
	pending   *prefabs.GameSpec

	hook         *notify.Switch
	hookName     string
	reloads      <-chan string
	reloadErrors <-chan error
	clipboard    Clipboard

	debug  bool
	closed bool
}

func NewGame(opts GameOptions) (*Game, error) {
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	g.ui = newMenuUI(g.theme, menuActions{
		Start:   g.requestStart,
		Restart: g.requestRestart,
		Copy:    g.copyScore,
		CanCopy: g.clipboard != nil,
	})
	return g, nil
}

// newGame builds the world and systems without any widgets.
func newGame(opts GameOptions) (*Game, error) {
	if opts.Spec == nil {
		return nil, errors.New("game: nil spec")
	}
	world := ecs.NewWorld()
	if err := entity.Populate(world, opts.Spec); err != nil {
		return nil, fmt.Errorf("game: populate: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	loop := ecs.NewFrameLoop()
	phase := system.NewPhaseSystem(loop, system.NewBallPhysicsSystem())
	notifier := system.NewNotifySystem(ctx, opts.Notifier, opts.Spec.BlockID, opts.Spec.GameType)

	// Hit runs before Phase so the click releasing the start button never
	// counts as a kick of the freshly launched ball.
	world.AddSystem(system.NewPointerInputSystem(opts.Pointer))
	world.AddSystem(system.NewHitSystem())
	world.AddSystem(phase)
	world.AddSystem(system.NewFrameLoopSystem(loop))
	world.AddSystem(notifier)

	return &Game{
		cancel:       cancel,
		world:        world,
		loop:         loop,
		phase:        phase,
		renderer:     system.NewRenderSystem(system.StyleFromSpec(opts.Spec)),
		notifier:     notifier,
		spec:         opts.Spec,
		theme:        opts.Theme,
		themeName:    opts.ThemeName,
		hook:         opts.Hook,
		hookName:     opts.HookName,
		reloads:      opts.Reloads,
		reloadErrors: opts.ReloadErrors,
		clipboard:    opts.Clipboard,
		debug:        opts.Debug,
	}, nil
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}
	if g.closed {
		return ebiten.Termination
	}

	if g.ui != nil {
		g.ui.Update()
	}
	g.step()
	if g.ui != nil {
		g.ui.Sync(g.session())
	}
	return nil
}

// step runs one frame of game logic.
func (g *Game) step() {
	g.drainReloads()
	g.applyPending()
	g.world.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugLine())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.spec.Field.Width), int(g.spec.Field.Height)
}

// Close stops physics and background work. It is safe to call repeatedly.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.phase.Close()
	g.loop.Close()
	g.cancel()
}

func (g *Game) session() component.Session {
	e, ok := ecs.First(g.world, component.SessionComponent.Kind())
	if !ok {
		return component.Session{}
	}
	s, ok := ecs.Get(g.world, e, component.SessionComponent.Kind())
	if !ok {
		return component.Session{}
	}
	return *s
}

func (g *Game) requestStart() {
	request(g, component.StartRequestComponent.Kind(), &component.StartRequest{})
}

func (g *Game) requestRestart() {
	request(g, component.RestartRequestComponent.Kind(), &component.RestartRequest{})
}

func (g *Game) copyScore() {
	if g.clipboard == nil {
		return
	}
	if err := g.clipboard.WriteText(shareText(g.theme, g.session().Score)); err != nil {
		log.Printf("share: %v", err)
	}
}

// request leaves a one-shot marker on the session for PhaseSystem.
func request[T any](g *Game, kind component.ComponentKind[T], value *T) {
	e, ok := ecs.First(g.world, component.SessionComponent.Kind())
	if !ok {
		return
	}
	if err := ecs.Add(g.world, e, kind, value); err != nil {
		log.Printf("game: request %s: %v", kind, err)
	}
}

func (g *Game) drainReloads() {
	for {
		select {
		case name, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.reloadErrors:
			if !ok {
				g.reloadErrors = nil
				continue
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == prefabs.GameSpecFile:
		spec, err := prefabs.LoadGameSpec()
		if err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
			return
		}
		g.pending = spec
	case name == prefabs.ThemeFile(g.themeName):
		theme, err := prefabs.LoadThemeSpec(g.themeName)
		if err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
			return
		}
		g.theme = theme
		if g.ui != nil {
			g.ui.SetTheme(theme)
		}
		if theme.WindowTitle != "" {
			ebiten.SetWindowTitle(theme.WindowTitle)
		}
	case g.hook != nil && sameScript(name, g.hookName):
		hook, err := loadHook(g.hookName)
		if err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
			return
		}
		g.hook.Store(hook)
		log.Printf("prefabs: reloaded hook %s", hook.Name())
	}
}

// applyPending swaps in a reloaded game spec once no game is in flight.
func (g *Game) applyPending() {
	if g.pending == nil || g.session().Phase == component.PhasePlaying {
		return
	}
	spec := g.pending
	g.pending = nil
	if err := entity.ApplySpec(g.world, spec); err != nil {
		log.Printf("prefabs: apply %s: %v", spec.Name, err)
		return
	}
	g.spec = spec
	g.renderer.SetStyle(system.StyleFromSpec(spec))
	g.notifier.SetTarget(spec.BlockID, spec.GameType)
	log.Printf("prefabs: applied %s", prefabs.GameSpecFile)
}

func (g *Game) debugLine() string {
	s := g.session()
	line := fmt.Sprintf("FPS: %.1f  phase: %s  score: %d  frames: %d", ebiten.ActualFPS(), s.Phase, s.Score, g.loop.Len())
	if e, ok := ecs.First(g.world, component.BallComponent.Kind()); ok {
		if b, ok := ecs.Get(g.world, e, component.BallComponent.Kind()); ok {
			line += fmt.Sprintf("\nball: (%.1f, %.1f) vy=%.2f", b.X, b.Y, b.VelocityY)
		}
	}
	return line
}

func sameScript(changed, hook string) bool {
	base := func(s string) string {
		return strings.TrimSuffix(path.Base(strings.ReplaceAll(s, "\\", "/")), ".tengo")
	}
	return strings.HasPrefix(changed, "scripts/") && base(changed) == base(hook)
}

func loadHook(name string) (*notify.ScriptNotifier, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("hook: load %s: %w", name, err)
	}
	return notify.NewScriptNotifier(name, src)
}
