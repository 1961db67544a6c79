package sim

import (
	"reflect"
	"testing"

	"github.com/plus3/bulletfall/ecs"
	"github.com/stretchr/testify/require"
)

// scriptedRandom replays fixed draws and records every call. Exhausted scripts fall back
// to lo, false and 0.
type scriptedRandom struct {
	ranges []float64
	bools  []bool
	ints   []int

	rangeCalls int
	boolCalls  int
	intCalls   int
	probs      []float64
}

func (r *scriptedRandom) Range(lo, hi float64) float64 {
	defer func() { r.rangeCalls++ }()
	if r.rangeCalls < len(r.ranges) {
		return r.ranges[r.rangeCalls]
	}
	return lo
}

func (r *scriptedRandom) Bool(p float64) bool {
	defer func() { r.boolCalls++ }()
	r.probs = append(r.probs, p)
	if r.boolCalls < len(r.bools) {
		return r.bools[r.boolCalls]
	}
	return false
}

func (r *scriptedRandom) IntN(n int) int {
	defer func() { r.intCalls++ }()
	if r.intCalls < len(r.ints) {
		return r.ints[r.intCalls]
	}
	return 0
}

// newWorld returns a store with the simulation's components and singletons but no entities.
func newWorld(t *testing.T) *ecs.Storage {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[TickCounter](storage)
	ecs.NewSingleton[Score](storage)
	ecs.NewSingleton[ScoreText](storage)
	return storage
}

func schedule(storage *ecs.Storage, systems ...ecs.System) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(storage)
	for _, system := range systems {
		scheduler.Register(system)
	}
	return scheduler
}

func spawnPlayer(storage *ecs.Storage, at Position) ecs.EntityId {
	id := storage.Spawn(playerBundle()...)
	*ecs.ReadComponent[Position](storage, id) = at
	return id
}

func spawnEnemy(storage *ecs.Storage, at Position) ecs.EntityId {
	return storage.Spawn(Enemy{}, at, Velocity{}, Force{}, Mass(1), Phase(0), Drawable{X: at.X, Y: at.Y, Kind: SpriteEnemy})
}

func spawnBullet(storage *ecs.Storage, at Position) ecs.EntityId {
	return storage.Spawn(bulletBundle(at)...)
}

func setTick(storage *ecs.Storage, value uint32) {
	ecs.NewSingleton[TickCounter](storage).Get().Value = value
}

func tickOf(storage *ecs.Storage) uint32 {
	return ecs.NewSingleton[TickCounter](storage).Get().Value
}

func setScore(storage *ecs.Storage, value uint32) {
	ecs.NewSingleton[Score](storage).Get().Value = value
}

func score(storage *ecs.Storage) uint32 {
	return ecs.NewSingleton[Score](storage).Get().Value
}

// count returns the number of live entities carrying a T component.
func count[T any](storage *ecs.Storage) int {
	typ := reflect.TypeFor[T]()
	n := 0
	for _, archetype := range storage.GetArchetypes() {
		if archetype.HasComponent(typ) {
			n += archetype.Len()
		}
	}
	return n
}

func newTestSimulation(t *testing.T, random Random, input Input) *Simulation {
	t.Helper()
	s, err := New(DefaultConfig(), random, input)
	require.NoError(t, err)
	return s
}
