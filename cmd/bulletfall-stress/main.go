package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/bulletfall/sim"
)

// autopilot holds fire and sweeps the player across the field.
type autopilot struct {
	sim *sim.Simulation
}

func (a *autopilot) Pressed(key sim.Key) bool {
	switch key {
	case sim.KeyFire:
		return true
	case sim.KeyLeft:
		return (a.sim.Tick()/120)%2 == 1
	case sim.KeyRight:
		return (a.sim.Tick()/120)%2 == 0
	}
	return false
}

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	seed := flag.Uint64("seed", 1, "Random seed; 0 seeds from the clock.")
	steps := flag.Int("steps", 0, "Stop after this many ticks; 0 runs for -duration.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	idle := flag.Bool("idle", false, "Leave the player idle instead of firing.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.Seed = *seed

	s, err := sim.New(cfg, nil, nil)
	if err != nil {
		log.Fatalf("Failed to build simulation: %v", err)
	}
	if !*idle {
		s.SetInput(&autopilot{sim: s})
	}

	report := &Report{
		RunID:          uuid.NewString(),
		Seed:           cfg.Seed,
		Duration:       *duration,
		Steps:          *steps,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Starting bulletfall stress run %s...", report.RunID)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for *steps == 0 || report.TotalUpdates < int64(*steps) {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		if err := s.Advance(); err != nil {
			log.Fatalf("Simulation stopped at tick %d: %v", s.Tick(), err)
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
		report.PeakEnemies = max(report.PeakEnemies, s.EnemyCount())
		report.PeakScore = max(report.PeakScore, s.Score())
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.FinalTick = s.Tick()
	report.FinalScore = s.ScoreText()
	report.Passes = s.Stats()
	report.Store = s.Storage().CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
