package sim

import (
	"iter"

	"github.com/plus3/bulletfall/ecs"
)

// Simulation owns the entity store and the two system passes.
//
// Step runs the fixed pass: tick, bullet collision, player collision, kinematics, coasting,
// spawning and player bounds. Frame runs the presentation pass: input, enemy behavior,
// render sync, score display, player sprite and pruning. Hosts call Step at a fixed rate
// and Frame once per displayed frame; Advance runs one of each.
type Simulation struct {
	config  Config
	storage *ecs.Storage
	fixed   *ecs.Scheduler
	frame   *ecs.Scheduler
	input   *InputSystem

	tick      *ecs.Singleton[TickCounter]
	score     *ecs.Singleton[Score]
	scoreText *ecs.Singleton[ScoreText]

	players   *ecs.Query[playerView]
	enemies   *ecs.Query[struct{ *Enemy }]
	drawables *ecs.Query[struct{ *Drawable }]
}

type playerView struct {
	*Position
	*PlayerSprite
	*Player
}

type noInput struct{}

func (noInput) Pressed(Key) bool { return false }

// New builds a simulation with a single player at its start position. A nil random uses
// NewRandom(cfg.Seed); a nil input holds no keys.
func New(cfg Config, random Random, input Input) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if random == nil {
		random = NewRandom(cfg.Seed)
	}
	if input == nil {
		input = noInput{}
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	s := &Simulation{
		config:    cfg,
		storage:   storage,
		tick:      ecs.NewSingleton[TickCounter](storage),
		score:     ecs.NewSingleton[Score](storage),
		scoreText: ecs.NewSingleton(storage, ScoreText{Text: FormatScore(0)}),
		players:   ecs.NewQuery[playerView](storage),
		enemies:   ecs.NewQuery[struct{ *Enemy }](storage),
		drawables: ecs.NewQuery[struct{ *Drawable }](storage),
	}
	ecs.NewSingleton(storage, cfg)

	storage.Spawn(playerBundle()...)

	s.fixed = ecs.NewNamedScheduler("fixed", storage)
	s.fixed.Register(&TickSystem{})
	s.fixed.Register(&BulletCollisionSystem{})
	s.fixed.Register(&PlayerCollisionSystem{})
	s.fixed.Register(&KinematicsSystem{})
	s.fixed.Register(&CoastingSystem{})
	s.fixed.Register(&SpawnSystem{Rules: cfg.SpawnRules, Random: random})
	s.fixed.Register(&PlayerBoundSystem{})

	s.input = &InputSystem{
		Input:        input,
		PlayerForce:  cfg.PlayerForce,
		FireInterval: cfg.FireInterval,
	}
	s.frame = ecs.NewNamedScheduler("frame", storage)
	s.frame.Register(s.input)
	s.frame.Register(&EnemyBehaviorSystem{})
	s.frame.Register(&RenderSyncSystem{})
	s.frame.Register(&ScoreDisplaySystem{})
	s.frame.Register(&PlayerSpriteSystem{})
	s.frame.Register(&PruneSystem{})

	return s, nil
}

// SetInput replaces the input source read by the frame pass.
func (s *Simulation) SetInput(input Input) {
	if input == nil {
		input = noInput{}
	}
	s.input.Input = input
}

// Step runs one fixed pass. A broken invariant is returned as an error wrapping ErrInvariant.
func (s *Simulation) Step() (err error) {
	defer recoverInvariant(&err)
	s.fixed.Once(s.config.DeltaTime)
	return nil
}

// Frame runs one presentation pass.
func (s *Simulation) Frame() (err error) {
	defer recoverInvariant(&err)
	s.frame.Once(s.config.DeltaTime)
	return nil
}

// Advance runs Step followed by Frame.
func (s *Simulation) Advance() error {
	if err := s.Step(); err != nil {
		return err
	}
	return s.Frame()
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.config
}

// Tick returns the number of fixed steps taken, modulo 2^32.
func (s *Simulation) Tick() uint32 {
	return s.tick.MustGet().Value
}

// Score returns the current score.
func (s *Simulation) Score() uint32 {
	return s.score.MustGet().Value
}

// ScoreText returns the score as last formatted by the frame pass.
func (s *Simulation) ScoreText() string {
	return s.scoreText.MustGet().Text
}

// Player returns the player's position. It returns false if the store does not hold
// exactly one player.
func (s *Simulation) Player() (Position, bool) {
	var (
		pos   Position
		count int
	)
	for player := range s.players.Values() {
		pos = *player.Position
		count++
	}
	return pos, count == 1
}

// PlayerSprite returns the player's animation frame index, or -1 without a player.
func (s *Simulation) PlayerSprite() int {
	for player := range s.players.Values() {
		return player.PlayerSprite.Index
	}
	return -1
}

// EnemyCount returns the number of live enemies.
func (s *Simulation) EnemyCount() int {
	return s.enemies.Count()
}

// Drawables yields the presentation state of every drawable entity in store order.
func (s *Simulation) Drawables() iter.Seq[Drawable] {
	return func(yield func(Drawable) bool) {
		for item := range s.drawables.Values() {
			if !yield(*item.Drawable) {
				return
			}
		}
	}
}

// Storage exposes the underlying store for tooling. Systems own all writes to it.
func (s *Simulation) Storage() *ecs.Storage {
	return s.storage
}

// Stats returns execution statistics of the fixed and frame passes, in that order.
func (s *Simulation) Stats() []*ecs.SchedulerStats {
	return []*ecs.SchedulerStats{s.fixed.GetStats(), s.frame.GetStats()}
}
