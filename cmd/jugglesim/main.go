// Command jugglesim plays the juggling game headless: a bot kicks the ball
// whenever it drops below a line, then lets it fall. It prints the
// completion messages a host would receive and a short summary, which makes
// it handy for checking a tuned juggling.yaml.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/ecs/entity"
	"github.com/milk9111/juggler/ecs/system"
	"github.com/milk9111/juggler/notify"
	"github.com/milk9111/juggler/prefabs"
)

const maxFrames = 100_000

type bot struct {
	world    *ecs.World
	kickLine float64
	kicks    int
	left     int
}

func (b *bot) JustClicked() (float64, float64, bool) {
	if b.left <= 0 {
		return 0, 0, false
	}
	e, ok := ecs.First(b.world, component.BallComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	ball, ok := ecs.Get(b.world, e, component.BallComponent.Kind())
	if !ok || ball.VelocityY <= 0 || ball.Y < b.kickLine {
		return 0, 0, false
	}
	b.left--
	return ball.X, ball.Y, true
}

func main() {
	dir := flag.String("dir", prefabs.Dir, "prefab directory checked before the embedded copy")
	kicks := flag.Int("kicks", 10, "number of kicks before the bot stops")
	kickLine := flag.Float64("line", 400, "the bot kicks once the falling ball passes this y")
	flag.Parse()

	prefabs.Dir = *dir
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	if err := entity.Populate(w, spec); err != nil {
		log.Fatal(err)
	}

	loop := ecs.NewFrameLoop()
	defer loop.Close()
	phase := system.NewPhaseSystem(loop, nil)
	defer phase.Close()

	player := &bot{world: w, kickLine: *kickLine, kicks: *kicks, left: *kicks}
	w.AddSystem(system.NewPointerInputSystem(player))
	w.AddSystem(system.NewHitSystem())
	w.AddSystem(phase)
	w.AddSystem(system.NewFrameLoopSystem(loop))
	w.AddSystem(system.NewNotifySystem(context.Background(), notify.NewStreamNotifier(os.Stdout), spec.BlockID, spec.GameType))

	if err := phase.Start(w); err != nil {
		log.Fatal(err)
	}

	sessionEnt, _ := ecs.First(w, component.SessionComponent.Kind())
	session, _ := ecs.Get(w, sessionEnt, component.SessionComponent.Kind())

	frames := 0
	for session.Phase == component.PhasePlaying {
		if frames >= maxFrames {
			log.Fatalf("jugglesim: no game over after %d frames", frames)
		}
		w.Update()
		frames++
	}

	missed := player.kicks - player.left - session.Score
	fmt.Fprintf(os.Stderr, "jugglesim: %s run=%s score=%d frames=%d missed=%d\n",
		spec.BlockID, session.RunID, session.Score, frames, missed)
}
