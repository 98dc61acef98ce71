package draw

import (
	"fmt"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
)

// Text is a string placed over the panel, centered on panel pixel (X, Y).
type Text struct {
	X, Y    int
	S       string
	Inverse bool
}

// Paint rasterizes a frame onto the canvas.
func Paint(c *Canvas, f loop.Frame) {
	c.Clear()

	if f.Screen == loop.ScreenQuit {
		c.Fill()
		return
	}

	if f.Screen != loop.ScreenIntro {
		drawBarrier(c)
	}
	for _, s := range f.Sprites {
		if s.Tier == object.TierProjectile {
			c.FillRect(s.X, s.Y, s.Size, s.Size)
			continue
		}
		c.DrawBitmap(s.X, s.Y, spriteFor(s.Tier), s.Size)
	}
	if f.Screen == loop.ScreenIntro {
		return
	}

	c.DrawBitmap(f.ShipX, config.ShipY, shipSprite, shipSpriteWidth)
	for _, l := range f.Turret {
		c.DrawLine(l.X0, l.Y0, l.X1, l.Y1)
	}
}

// drawBarrier draws the dotted shield line.
func drawBarrier(c *Canvas) {
	for x := 0; x < config.ScreenWidth; x += 2 {
		c.Set(x, config.ShieldLine)
	}
}

func spriteFor(t object.Tier) []byte {
	switch t {
	case object.TierAsteroid:
		return asteroidSprite
	case object.TierBoulder:
		return boulderSprite
	default:
		return fragmentSprite
	}
}

// Texts returns the text overlays for a frame.
func Texts(f loop.Frame) []Text {
	cx := config.ScreenWidth / 2
	cy := config.ScreenHeight / 2

	var out []Text
	switch f.Screen {
	case loop.ScreenIntro:
		out = append(out,
			Text{X: cx, Y: 20, S: "SPACE PEW PEW"},
			Text{X: cx, Y: 34, S: "SW1 (z) or r - start"},
		)
	case loop.ScreenQuit:
		out = append(out, Text{X: cx, Y: cy - 2, S: "GOODBYE", Inverse: true})
	case loop.ScreenAwaiting:
		out = append(out,
			Text{X: cx, Y: cy - 10, S: "Receiving"},
			Text{X: cx, Y: cy, S: "Input"},
		)
	case loop.ScreenGameOver:
		out = append(out, Text{X: cx, Y: cy - 5, S: "GAME OVER"})
	case loop.ScreenOverChoice:
		out = append(out,
			Text{X: cx, Y: cy - 10, S: "SW1 - Restart"},
			Text{X: cx, Y: cy, S: "SW2 - Quit"},
		)
	}

	if f.Status {
		out = append(out,
			Text{X: 20, Y: 0, S: fmt.Sprintf("Time: %d", f.GameTime)},
			Text{X: 20, Y: 10, S: fmt.Sprintf("Life: %d", f.Shield)},
			Text{X: 20, Y: 20, S: fmt.Sprintf("Score: %d", f.Score)},
		)
	}
	if f.LEDs.Left {
		out = append(out, Text{X: 2, Y: 0, S: "<"})
	}
	if f.LEDs.Right {
		out = append(out, Text{X: config.ScreenWidth - 3, Y: 0, S: ">"})
	}
	return out
}
