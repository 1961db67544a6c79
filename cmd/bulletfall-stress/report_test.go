package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/bulletfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Seed = 5
	s, err := sim.New(cfg, nil, nil)
	require.NoError(t, err)
	s.SetInput(&autopilot{sim: s})
	for range 300 {
		require.NoError(t, s.Advance())
	}

	report := &Report{
		RunID:        "run-1",
		Seed:         5,
		Steps:        300,
		TotalUpdates: 300,
		FinalTick:    s.Tick(),
		FinalScore:   s.ScoreText(),
		Passes:       s.Stats(),
		Store:        s.Storage().CollectStats(),
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "**Run ID:** run-1")
	assert.Contains(t, out, "**Limit:** 300 ticks")
	assert.Contains(t, out, "**Final Tick:** 300")
	assert.Contains(t, out, "### fixed pass (300 runs)")
	assert.Contains(t, out, "### frame pass (300 runs)")
	assert.Contains(t, out, "| SpawnSystem |")
	assert.Contains(t, out, "| PruneSystem |")
	assert.NotContains(t, out, "GC Pause")
}

func TestAutopilot(t *testing.T) {
	s, err := sim.New(sim.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	pilot := &autopilot{sim: s}

	assert.True(t, pilot.Pressed(sim.KeyFire))
	assert.True(t, pilot.Pressed(sim.KeyRight))
	assert.False(t, pilot.Pressed(sim.KeyLeft))
	assert.False(t, pilot.Pressed(sim.KeyUp))

	for range 120 {
		require.NoError(t, s.Step())
	}
	assert.True(t, pilot.Pressed(sim.KeyLeft))
	assert.False(t, pilot.Pressed(sim.KeyRight))
}
