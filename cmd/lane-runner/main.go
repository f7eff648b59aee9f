package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-runner/audio"
	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/core"
	"github.com/lixenwraith/lane-runner/engine"
	"github.com/lixenwraith/lane-runner/event"
	"github.com/lixenwraith/lane-runner/feed"
	"github.com/lixenwraith/lane-runner/game"
	"github.com/lixenwraith/lane-runner/input"
	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/prefs"
	"github.com/lixenwraith/lane-runner/render"
	"github.com/lixenwraith/lane-runner/status"
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	dbFlag     = flag.String("db", "data/prefs.db", "SQLite preferences file, empty keeps preferences in memory")
	feedFlag   = flag.String("feed", "", "Spectator websocket address, e.g. :8080")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/lane-runner.log")
	muteFlag   = flag.Bool("mute", false, "Start muted regardless of the saved preference")
	seedFlag   = flag.Uint64("seed", 0, "Spawner seed, 0 seeds from the clock")
)

func main() {
	flag.Parse()
	os.Exit(execute(*debugFlag, run))
}

// execute runs fn under the debug log and returns the process exit code
// Deferred cleanup finishes before main exits
func execute(debug bool, fn func() error) int {
	if f := setupLogging(debug); f != nil {
		defer func() {
			log.SetOutput(io.Discard)
			f.Close()
		}()
	}
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := fn(); err != nil {
		log.Printf("lane-runner: %v", err)
		fmt.Fprintf(os.Stderr, "lane-runner: %v\n", err)
		return 1
	}
	return 0
}

func openStore(path string) (prefs.Store, error) {
	if path == "" {
		return prefs.NewMemoryStore(), nil
	}
	return prefs.OpenSQLite(path)
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	store, err := openStore(*dbFlag)
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	defer store.Close()

	var rng *rand.Rand
	if *seedFlag != 0 {
		rng = rand.New(rand.NewPCG(*seedFlag, *seedFlag))
	}

	reg := status.NewRegistry()
	session, err := game.NewSession(game.Deps{
		Config:  cfg,
		Store:   store,
		Rand:    rng,
		Metrics: reg,
	})
	if err != nil {
		return err
	}
	meta := session.Meta()

	// Audio is optional; a missing device leaves the game silent
	sound := audio.NewSoundManager(audio.NewAudioConfig(cfg.Audio))
	sound.SetMuted(*muteFlag || !meta.SoundOn())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()
	session.Subscribe(sound)

	session.Subscribe(event.HandlerFunc(func(ev event.GameEvent) {
		if ev.Type == event.EventInterstitialDue {
			log.Printf("session: interstitial due after %d games", meta.GamesPlayed())
		}
	}))

	if *feedFlag != "" {
		hub := feed.NewHub(reg)
		session.Subscribe(hub)
		stop := startServer(*feedFlag, hub, reg)
		defer stop()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetResetHook(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()

	renderer := render.NewRenderer(screen, cfg.Movement.LaneWidth)
	sched := engine.NewScheduler(session, engine.NewMonotonicTimeProvider(), parameter.GameUpdateInterval)

	// Frames are produced on the tick goroutine and drawn on this one
	frames := make(chan render.Frame, 1)
	dropped := reg.Ints.Get(status.KeyDroppedInputs)
	sched.OnFrame(func() {
		snap := session.Snapshot()
		sound.SetEngineSpeed(snap.SpeedRatio)
		dropped.Store(int64(sched.DroppedInputs()))
		f := render.Frame{
			Snap:    snap,
			SoundOn: meta.SoundOn() && !*muteFlag,
			RateUs:  snap.GameOver && meta.ShouldShowRateUs(),
		}
		select {
		case frames <- f:
		default:
			// Renderer still busy with the previous frame
		}
	})

	machine := input.NewMachine(nil)
	dispatcher := input.NewDispatcher(session, sched.Post, parameter.KeyHoldTimeout)
	defer dispatcher.Stop()
	dispatcher.OnToggleSound(func() {
		sched.Post(func() {
			on := !meta.SoundOn()
			meta.SetSoundOn(on)
			sound.SetMuted(!on || *muteFlag)
		})
	})
	dispatcher.OnRateUs(func() {
		sched.Post(meta.MarkRated)
	})
	dispatcher.OnResize(screen.Sync)

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	sched.Start()
	defer sched.Stop()
	log.Printf("lane-runner: started, best=%d lives=%d", session.Snapshot().Best, cfg.Life.InitialLives)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for _, in := range machine.Process(ev) {
				if !dispatcher.Apply(in) {
					return nil
				}
			}
		case f := <-frames:
			renderer.Draw(f)
		}
	}
}
