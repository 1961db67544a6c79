package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bulletfall/sim"
)

var (
	fieldStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
	enemyStyle  = fieldStyle.Foreground(tcell.ColorRed)
	bulletStyle = fieldStyle.Foreground(tcell.ColorYellow)
	scoreStyle  = fieldStyle.Foreground(tcell.ColorWhite).Bold(true)
)

// playerGlyphs is indexed by the player sprite index.
var playerGlyphs = [6]rune{'<', 'A', '>', '{', 'W', '}'}

func playerGlyph(index int) rune {
	if index < 0 || index >= len(playerGlyphs) {
		return playerGlyphs[1]
	}
	return playerGlyphs[index]
}

// toCell maps world coordinates (y up) onto a w x h grid of cells (row 0 at the top).
// ok is false outside the grid.
func toCell(x, y float64, w, h int) (col, row int, ok bool) {
	col = int(x / sim.FieldWidth * float64(w))
	row = h - 1 - int(y/sim.FieldHeight*float64(h))
	return col, row, col >= 0 && col < w && row >= 0 && row < h
}

func drawWorld(screen tcell.Screen, s *sim.Simulation) {
	screen.SetStyle(fieldStyle)
	screen.Clear()
	w, h := screen.Size()

	for d := range s.Drawables() {
		col, row, ok := toCell(d.X, d.Y, w, h)
		if !ok {
			continue
		}
		switch d.Kind {
		case sim.SpritePlayer:
			style := fieldStyle.Foreground(tcell.ColorAqua)
			if s.PlayerSprite() >= 3 {
				style = style.Reverse(true)
			}
			screen.SetContent(col, row, playerGlyph(s.PlayerSprite()), nil, style)
		case sim.SpriteEnemy:
			screen.SetContent(col, row, 'V', nil, enemyStyle)
		case sim.SpriteBullet:
			screen.SetContent(col, row, '|', nil, bulletStyle)
		}
	}

	for i, r := range s.ScoreText() {
		screen.SetContent(i, 0, r, nil, scoreStyle)
	}
}
