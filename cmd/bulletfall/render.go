package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/bulletfall/sim"
)

const worldScale = ScreenWidth / sim.FieldWidth

var (
	backgroundColor = color.RGBA{16, 18, 32, 255}
	fieldColor      = color.RGBA{24, 28, 48, 255}
	enemyColor      = color.RGBA{235, 90, 90, 255}
	bulletColor     = color.RGBA{255, 230, 120, 255}
)

// playerColors is indexed by the player sprite index: three headings, then the same
// headings on blink ticks.
var playerColors = [6]color.RGBA{
	{120, 180, 255, 255},
	{140, 220, 255, 255},
	{120, 180, 255, 255},
	{220, 240, 255, 255},
	{240, 250, 255, 255},
	{220, 240, 255, 255},
}

// toScreen maps world coordinates (y up) to screen pixels (y down).
func toScreen(x, y float64) (float32, float32) {
	return float32(x * worldScale), float32((sim.FieldHeight - y) * worldScale)
}

func playerColor(index int) color.RGBA {
	if index < 0 || index >= len(playerColors) {
		return playerColors[1]
	}
	return playerColors[index]
}

func drawWorld(screen *ebiten.Image, s *sim.Simulation) {
	screen.Fill(backgroundColor)
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, fieldColor, false)

	for d := range s.Drawables() {
		x, y := toScreen(d.X, d.Y)
		switch d.Kind {
		case sim.SpritePlayer:
			// The player sprite is 16x32 world units.
			w, h := float32(16*worldScale), float32(32*worldScale)
			vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, playerColor(s.PlayerSprite()), false)
		case sim.SpriteEnemy:
			vector.DrawFilledCircle(screen, x, y, 8*worldScale, enemyColor, true)
		case sim.SpriteBullet:
			vector.DrawFilledRect(screen, x-2, y-6, 4, 12, bulletColor, false)
		}
	}

	x, y := toScreen(224, 20)
	ebitenutil.DebugPrintAt(screen, s.ScoreText(), int(x), int(y))
}
