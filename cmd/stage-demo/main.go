package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"

	"github.com/plus3/stagehand/debugui"
	"github.com/plus3/stagehand/stage"
	stageebiten "github.com/plus3/stagehand/stage/ebiten"
	"github.com/plus3/stagehand/stage/headless"
	stageraylib "github.com/plus3/stagehand/stage/raylib"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

type window interface {
	stage.Canvas
	stage.Host
}

func main() {
	backend := flag.String("backend", "ebiten", "Window backend: ebiten, raylib or headless.")
	frames := flag.Uint64("frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug panels (ebiten only).")
	toggle := flag.Float64("toggle", 5, "Seconds between camera swaps (0 = never).")
	lineWidth := flag.Float64("line-width", 1.5, "Wireframe line width in pixels.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*backend, *frames, *debug, float32(*toggle), float32(*lineWidth)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(backend string, frames uint64, debug bool, toggle, lineWidth float32) error {
	var win window
	var ebitenWindow *stageebiten.Window
	switch backend {
	case "ebiten":
		ebitenWindow = stageebiten.NewWindow("Stagehand Demo", ScreenWidth, ScreenHeight)
		win = ebitenWindow
	case "raylib":
		win = stageraylib.NewWindow("Stagehand Demo", ScreenWidth, ScreenHeight, 60)
	case "headless":
		win = headless.New(headless.Config{Width: ScreenWidth, Height: ScreenHeight, Frames: frames})
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}

	manager, err := stage.NewManager(stage.Options{
		Canvas: win,
		Render: stage.RenderOptions{
			ClearColor: color.RGBA{R: 24, G: 24, B: 32, A: 255},
			LineWidth:  lineWidth,
			Antialias:  true,
		},
	})
	if err != nil {
		return err
	}
	defer manager.Dispose()

	actors := []stage.Actor{
		&FloorActor{Size: 20, Divisions: 20},
		&SpinnerActor{Count: 8, Radius: 4, Speed: 1.2},
		&PulseActor{Period: 2},
		&OrbitActor{Distance: 10, Height: 4, Speed: 0.3},
		&CameraToggleActor{Interval: toggle},
	}

	if debug {
		if ebitenWindow == nil {
			return fmt.Errorf("-debug needs the ebiten backend")
		}
		ebitenWindow.SetOverlay(debugui.NewOverlay("Stagehand Demo", ScreenWidth, ScreenHeight))
		actors = append(actors,
			debugui.NewPerformanceStats(manager.Stats, 120),
			debugui.NewSceneInspector(),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := manager.Start(ctx, actors...); err != nil {
		return err
	}

	stats := manager.Stats()
	slog.Info("demo finished", "frames", stats.Frames, "skipped", stats.SkippedRenders, "elapsed", stats.Elapsed)
	return nil
}
