package sim

import (
	"fmt"

	"github.com/plus3/bulletfall/ecs"
)

// Score is the player's points. Only the collision systems change it.
type Score struct {
	Value uint32
}

// Award adds points to the score.
func (s *Score) Award(points uint32) {
	s.Value += points
}

// Reset sets the score back to zero.
func (s *Score) Reset() {
	s.Value = 0
}

// ScoreText is the score as shown to the player.
type ScoreText struct {
	Text string
}

// FormatScore renders the last four digits of score, zero-padded to five.
func FormatScore(score uint32) string {
	return fmt.Sprintf("%05d", score%10000)
}

// ScoreDisplaySystem refreshes ScoreText from Score.
type ScoreDisplaySystem struct {
	Score ecs.Singleton[Score]
	Text  ecs.Singleton[ScoreText]
}

func (s *ScoreDisplaySystem) Execute(frame *ecs.UpdateFrame) {
	s.Text.MustGet().Text = FormatScore(s.Score.MustGet().Value)
}
