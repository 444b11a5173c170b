package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/juggler/notify"
	"github.com/milk9111/juggler/prefabs"
	"golang.org/x/sync/errgroup"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	themeName := flag.String("theme", prefabs.ThemeChampionship, "presentation theme in prefabs/ (championship or classic)")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	hookName := flag.String("hook", "", "completion hook script in prefabs/scripts (basename, .tengo optional)")
	sinks := flag.String("notify", "log,stdout", "completion listeners, comma separated: log, stdout, none")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}
	theme, err := prefabs.LoadThemeSpec(*themeName)
	if err != nil {
		log.Fatal(err)
	}

	hook := notify.NewSwitch(nil)
	if *hookName != "" {
		script, err := loadHook(*hookName)
		if err != nil {
			log.Fatal(err)
		}
		hook.Store(script)
	}
	listeners, err := parseListeners(*sinks, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	dispatcher := notify.NewDispatcher(append(listeners, hook), notify.DefaultQueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return dispatcher.Run(gctx) })

	opts := GameOptions{
		Spec:      spec,
		Theme:     theme,
		ThemeName: *themeName,
		Notifier:  dispatcher,
		Hook:      hook,
		HookName:  *hookName,
		Debug:     *debug,
	}

	if *watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			defer watcher.Close()
			opts.Reloads = watcher.Events
			opts.ReloadErrors = watcher.Errors
			group.Go(func() error { return watcher.Run(gctx) })
		}
	}

	if cb, err := openClipboard(); err != nil {
		log.Printf("%v; copy button disabled", err)
	} else {
		opts.Clipboard = cb
	}

	game, err := NewGame(opts)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(spec.Field.Width), int(spec.Field.Height))
	ebiten.SetWindowTitle(theme.WindowTitle)
	ebiten.SetWindowClosingHandled(true)

	runErr := ebiten.RunGame(game)

	game.Close()
	dispatcher.Close()
	cancel()
	if err := group.Wait(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
