// Physbench runs headless physics worlds and reports step timings.
//
// Profiling:
// go build ./cmd/physbench
// ./physbench -profile cpu
// go tool pprof -http=":8000" ./physbench cpu.pprof
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/milk9111/engine2d/config"
	"github.com/milk9111/engine2d/engine"
	"github.com/milk9111/engine2d/loop"
	"github.com/milk9111/engine2d/prefabs"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"
)

type result struct {
	world    int
	entities int
	steps    int
	total    time.Duration
	worst    time.Duration
	contacts int
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	bodies := flag.Int("bodies", 400, "dynamic bodies per world")
	seconds := flag.Float64("seconds", 10, "simulated seconds per world")
	worlds := flag.Int("worlds", 1, "independent worlds to run in parallel")
	seed := flag.Uint64("seed", 1, "placement seed")
	mode := flag.String("profile", "", "cpu, mem or empty for none")
	staticResponse := flag.Bool("static-response", true, "let static colliders bounce bodies")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.Loop.FixedTimestep = true
	cfg.Physics.StaticResponse = *staticResponse

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q", *mode)
	}

	results := make([]result, *worlds)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i := range *worlds {
		g.Go(func() error {
			r, err := run(ctx, cfg, i, *bodies, *seconds, *seed+uint64(i))
			if err != nil {
				return fmt.Errorf("world %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(results, func(a, b int) bool { return results[a].world < results[b].world })
	for _, r := range results {
		avg := r.total / time.Duration(max(r.steps, 1))
		log.Printf("Physbench: world=%d entities=%d steps=%d avg=%s worst=%s contacts=%d",
			r.world, r.entities, r.steps, avg, r.worst, r.contacts)
	}
}

func run(ctx context.Context, cfg config.Config, id, bodies int, seconds float64, seed uint64) (result, error) {
	eng, err := engine.New(cfg, prefabs.NewLibrary(""), nil)
	if err != nil {
		return result{}, err
	}
	if err := populate(eng, bodies, seed); err != nil {
		return result{}, err
	}

	stepper := loop.NewStepper(cfg.LoopConfig())
	frame := stepper.FixedDelta()
	res := result{world: id}

	for elapsed := 0.0; elapsed < seconds; elapsed += frame {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		res.steps += stepper.Advance(frame, eng.Update)
		took := time.Since(start)
		res.total += took
		res.worst = max(res.worst, took)
		res.contacts += len(eng.Physics.Collisions())
	}
	res.entities = eng.World.EntityCount()
	return res, nil
}

// populate boxes the play area with static walls and drops bodies into it.
func populate(eng *engine.Engine, bodies int, seed uint64) error {
	w := float64(eng.Config.Window.Width)
	h := float64(eng.Config.Window.Height)
	if _, err := eng.Spawn("ground.yaml", w/2, h-20); err != nil {
		return err
	}
	for _, x := range []float64{16, w - 16} {
		if _, err := eng.Spawn("wall.yaml", x, h-120); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	kinds := []string{"ball.yaml", "crate.yaml"}
	for i := range bodies {
		x := 40 + rng.Float64()*(w-80)
		y := rng.Float64() * (h - 100)
		if _, err := eng.Spawn(kinds[i%len(kinds)], x, y); err != nil {
			return err
		}
	}
	return nil
}
