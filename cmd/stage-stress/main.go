package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/headless"
	"github.com/plus3/stagehand/stage/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	actorCount := flag.Int("actors", 50, "The number of actors driven every frame.")
	objectCount := flag.Int("objects", 200, "The number of objects each actor spawns.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting stage stress test...")

	// 1. Setup headless window and manager
	window := headless.New(headless.Config{Width: 1920, Height: 1080, Unthrottled: true})
	manager, err := stage.NewManager(stage.Options{Canvas: window})
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Dispose()

	// 2. Build actors; they populate the scene on Start
	log.Printf("Creating %d actors with %d objects each...\n", *actorCount, *objectCount)
	actors := make([]stage.Actor, *actorCount)
	for i := range actors {
		actors[i] = &jitterActor{objects: *objectCount, rng: rand.New(rand.NewSource(int64(i)))}
	}
	actors = append(actors, &frameSampler{})

	// 3. Run the frame loop
	report := &Report{
		Duration: *duration,
		Actors:   *actorCount,
		Objects:  *actorCount * *objectCount,

		GCPauseMetrics: *gcPauseMetrics,
	}
	sampler := actors[len(actors)-1].(*frameSampler)
	sampler.stats = &report.FrameTime

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running frame loop for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if err := manager.Start(ctx, actors...); err != nil {
		log.Fatalf("Frame loop failed: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	report.ManagerStats = manager.Stats()
	report.Segments = manager.Renderer().(*headless.Recorder).Segments()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Frame loop finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// jitterActor spawns a group of boxes and nudges them every frame.
type jitterActor struct {
	stage.BaseActor
	objects int
	rng     *rand.Rand

	group *scene.Object
}

func (a *jitterActor) Start() {
	a.group = scene.NewObject("group", nil)
	for i := 0; i < a.objects; i++ {
		o := scene.NewObject("box", scene.NewBox(0.1, 0.1, 0.1))
		o.Position = mgl32.Vec3{a.rng.Float32()*20 - 10, a.rng.Float32()*20 - 10, -a.rng.Float32() * 50}
		a.group.Add(o)
	}
	a.Scene().Add(a.group)
}

func (a *jitterActor) Update(delta float64) {
	for _, o := range a.group.Children() {
		o.Rotation[1] += float32(delta)
		o.Position[0] += (a.rng.Float32() - 0.5) * 0.01
	}
}

// frameSampler records the wall time between its own updates.
type frameSampler struct {
	stage.BaseActor
	stats *Stats
	last  time.Time
}

func (f *frameSampler) Update(delta float64) {
	now := time.Now()
	if !f.last.IsZero() {
		f.stats.Samples = append(f.stats.Samples, now.Sub(f.last))
	}
	f.last = now
}
