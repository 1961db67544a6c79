package sim

import (
	"testing"

	"github.com/plus3/bulletfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulation(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, nil)

	pos, ok := s.Player()
	require.True(t, ok)
	assert.Equal(t, Position{X: 128, Y: 20}, pos)
	assert.Equal(t, uint32(0), s.Tick())
	assert.Equal(t, uint32(0), s.Score())
	assert.Equal(t, "00000", s.ScoreText())
	assert.Equal(t, 1, s.PlayerSprite())
	assert.Equal(t, 0, s.EnemyCount())

	var cfg *Config
	require.True(t, s.Storage().ReadSingleton(&cfg))
	assert.Equal(t, s.Config(), *cfg)

	_, err := New(Config{}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSimulationFirstGuaranteedSpawn(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, nil)

	for range 239 {
		require.NoError(t, s.Step())
	}
	assert.Equal(t, 0, s.EnemyCount())

	require.NoError(t, s.Step())
	assert.Equal(t, uint32(240), s.Tick())
	assert.Equal(t, 1, s.EnemyCount())
}

func TestSimulationEndToEnd(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42} {
		cfg := DefaultConfig()
		cfg.Seed = seed
		s, err := New(cfg, nil, nil)
		require.NoError(t, err)

		for range 240 {
			require.NoError(t, s.Advance())
		}

		assert.Equal(t, uint32(240), s.Tick())
		assert.GreaterOrEqual(t, s.EnemyCount(), 1, "seed %d", seed)

		pos, ok := s.Player()
		require.True(t, ok)
		assert.Equal(t, Position{X: 128, Y: 20}, pos)
	}
}

func TestSimulationBulletsResolveBeforePlayer(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, nil)
	storage := s.Storage()

	// The bullet removes the enemy first, so the player collision never sees it.
	spawnEnemy(storage, Position{X: 128, Y: 25})
	spawnBullet(storage, Position{X: 128, Y: 22})

	require.NoError(t, s.Step())
	assert.Equal(t, uint32(100), s.Score())
	assert.Equal(t, 0, s.EnemyCount())
}

func TestSimulationPlayerReset(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, nil)
	storage := s.Storage()
	setScore(storage, 700)
	spawnEnemy(storage, Position{X: 130, Y: 24})
	spawnEnemy(storage, Position{X: 10, Y: 300})

	require.NoError(t, s.Advance())

	assert.Equal(t, uint32(0), s.Score())
	assert.Equal(t, "00000", s.ScoreText())
	assert.Equal(t, 0, s.EnemyCount())
	pos, _ := s.Player()
	assert.Equal(t, Position{X: 128, Y: 20}, pos)
}

func TestSimulationFiring(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, KeySet{KeyFire: true})

	for range 12 {
		require.NoError(t, s.Advance())
	}

	kinds := map[SpriteKind]int{}
	for d := range s.Drawables() {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[SpriteKind]int{SpritePlayer: 1, SpriteBullet: 1}, kinds)

	require.NoError(t, s.Advance())
	for d := range s.Drawables() {
		if d.Kind == SpriteBullet {
			assert.Equal(t, Drawable{X: 128, Y: 30, Kind: SpriteBullet}, d)
		}
	}

	// Bullets leave the field and are pruned once above y=500.
	s.SetInput(nil)
	for range 50 {
		require.NoError(t, s.Advance())
	}
	assert.Equal(t, 0, count[Bullet](s.Storage()))
}

func TestSimulationPlayerSprite(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, KeySet{KeyRight: true})

	require.NoError(t, s.Advance())
	assert.Equal(t, 2, s.PlayerSprite())

	for s.Tick() < 15 {
		require.NoError(t, s.Advance())
	}
	assert.Equal(t, 5, s.PlayerSprite())

	pos, _ := s.Player()
	assert.Greater(t, pos.X, 128.0)
}

func TestSimulationKeepsPlayerInBounds(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, KeySet{KeyLeft: true, KeyDown: true})

	for range 600 {
		require.NoError(t, s.Advance())
		pos, ok := s.Player()
		require.True(t, ok)
		require.GreaterOrEqual(t, pos.X, 0.0)
		require.GreaterOrEqual(t, pos.Y, 0.0)
	}
	pos, _ := s.Player()
	assert.Equal(t, Position{X: 0, Y: 0}, pos)
}

func TestSimulationInvariantErrors(t *testing.T) {
	players := func(s *Simulation) []ecs.EntityId {
		var ids []ecs.EntityId
		for id := range ecs.NewView[struct{ *Player }](s.Storage()).Iter() {
			ids = append(ids, id)
		}
		return ids
	}

	t.Run("missing player", func(t *testing.T) {
		s := newTestSimulation(t, &scriptedRandom{}, nil)
		s.Storage().Delete(players(s)[0])

		err := s.Step()
		assert.ErrorIs(t, err, ErrMissingPlayer)
		assert.ErrorIs(t, err, ErrInvariant)

		_, ok := s.Player()
		assert.False(t, ok)
		assert.Equal(t, -1, s.PlayerSprite())
	})

	t.Run("duplicate player", func(t *testing.T) {
		s := newTestSimulation(t, &scriptedRandom{}, nil)
		s.Storage().Spawn(playerBundle()...)

		assert.ErrorIs(t, s.Frame(), ErrDuplicatePlayer)
	})

	t.Run("invalid mass", func(t *testing.T) {
		s := newTestSimulation(t, &scriptedRandom{}, nil)
		s.Storage().Spawn(Enemy{}, Position{X: 10, Y: 300}, Velocity{}, Force{}, Mass(0), Phase(0))

		assert.ErrorIs(t, s.Step(), ErrInvalidMass)
	})

	t.Run("other panics propagate", func(t *testing.T) {
		defer func() {
			assert.Equal(t, "boom", recover())
		}()
		func() (err error) {
			defer recoverInvariant(&err)
			panic("boom")
		}()
	})
}

func TestSimulationStats(t *testing.T) {
	s := newTestSimulation(t, &scriptedRandom{}, nil)
	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())

	stats := s.Stats()
	require.Len(t, stats, 2)

	assert.Equal(t, "fixed", stats[0].Name)
	assert.Equal(t, int64(2), stats[0].Passes)
	names := make([]string, 0, len(stats[0].Systems))
	for _, system := range stats[0].Systems {
		names = append(names, system.Name)
	}
	assert.Equal(t, []string{
		"TickSystem",
		"BulletCollisionSystem",
		"PlayerCollisionSystem",
		"KinematicsSystem",
		"CoastingSystem",
		"SpawnSystem",
		"PlayerBoundSystem",
	}, names)

	assert.Equal(t, "frame", stats[1].Name)
	assert.Equal(t, 6, stats[1].SystemCount)
	assert.Equal(t, "InputSystem", stats[1].Systems[0].Name)
	assert.Equal(t, "PruneSystem", stats[1].Systems[5].Name)
}
