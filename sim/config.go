package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tuning values of a run. It is stored as a singleton and is read-only
// once the Simulation is built.
type Config struct {
	// DeltaTime is the force integration step of the kinematics pass.
	DeltaTime float64 `yaml:"delta_time"`
	// Seed feeds the default random source. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
	// PlayerForce is the force applied per held direction key.
	PlayerForce float64 `yaml:"player_force"`
	// FireInterval is the tick period at which a held fire key shoots.
	FireInterval uint32      `yaml:"fire_interval"`
	SpawnRules   []SpawnRule `yaml:"spawn_rules"`
}

// SpawnRule spawns one enemy on every tick that is a multiple of Every.
// A rule either always fires, fires with a fixed Chance, or fires with a probability of
// ScoreFactor*score clamped to [0.001, 0.999].
type SpawnRule struct {
	Every       uint32  `yaml:"every"`
	Always      bool    `yaml:"always,omitempty"`
	Chance      float64 `yaml:"chance,omitempty"`
	ScoreFactor float64 `yaml:"score_factor,omitempty"`
}

const (
	minSpawnChance = 0.001
	maxSpawnChance = 0.999
)

// Probability returns the chance that the rule fires given the current score.
func (r SpawnRule) Probability(score uint32) float64 {
	if r.Always {
		return 1
	}
	if r.ScoreFactor > 0 {
		return clamp(r.ScoreFactor*float64(score), minSpawnChance, maxSpawnChance)
	}
	return r.Chance
}

// DefaultConfig returns the stock game tuning.
func DefaultConfig() Config {
	return Config{
		DeltaTime:    0.017,
		PlayerForce:  10,
		FireInterval: 12,
		SpawnRules: []SpawnRule{
			{Every: 240, Always: true},
			{Every: 120, Chance: 0.7},
			{Every: 40, ScoreFactor: 0.0003},
			{Every: 13, ScoreFactor: 0.0001},
		},
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports every problem with c, joined, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.DeltaTime <= 0 {
		invalid("delta_time must be positive, got %v", c.DeltaTime)
	}
	if c.PlayerForce < 0 {
		invalid("player_force must not be negative, got %v", c.PlayerForce)
	}
	if c.FireInterval == 0 {
		invalid("fire_interval must be positive")
	}
	for i, rule := range c.SpawnRules {
		if rule.Every == 0 {
			invalid("spawn_rules[%d]: every must be positive", i)
		}
		if rule.Chance < 0 || rule.Chance > 1 {
			invalid("spawn_rules[%d]: chance %v outside [0, 1]", i, rule.Chance)
		}
		if rule.ScoreFactor < 0 {
			invalid("spawn_rules[%d]: score_factor must not be negative", i)
		}
	}

	return errors.Join(errs...)
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
