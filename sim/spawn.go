package sim

import "github.com/plus3/bulletfall/ecs"

const (
	enemySpawnMinX = 12.0
	enemySpawnMaxX = 244.0
	enemySpawnY    = 380.0
	phasePeriod    = 60
)

// SpawnSystem checks every spawn rule each fixed step. Rules are independent, so several
// enemies may spawn on the same tick.
type SpawnSystem struct {
	Rules  []SpawnRule
	Random Random

	Tick  ecs.Singleton[TickCounter]
	Score ecs.Singleton[Score]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	tick := s.Tick.MustGet()
	score := s.Score.MustGet().Value

	for _, rule := range s.Rules {
		if !tick.IsMultipleOf(rule.Every) {
			continue
		}
		// Unconditional rules draw nothing from the random source.
		if !rule.Always && !s.Random.Bool(rule.Probability(score)) {
			continue
		}
		s.spawnEnemy(frame.Commands)
	}
}

func (s *SpawnSystem) spawnEnemy(commands *ecs.Commands) {
	x := s.Random.Range(enemySpawnMinX, enemySpawnMaxX)
	phase := s.Random.IntN(phasePeriod)
	commands.Spawn(enemyBundle(x, phase)...)
}
