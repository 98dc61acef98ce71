package loop

import (
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
)

// Screen selects what the display shows.
type Screen string

const (
	ScreenIntro      Screen = "intro"
	ScreenPlaying    Screen = "playing"
	ScreenAwaiting   Screen = "awaiting"
	ScreenGameOver   Screen = "game-over"
	ScreenOverChoice Screen = "over-choice"
	ScreenQuit       Screen = "quit"
)

// Sprite is one visible entity.
type Sprite struct {
	Tier object.Tier `json:"tier"`
	X    int         `json:"x"`
	Y    int         `json:"y"`
	Size int         `json:"size"`
}

// Line is a segment in panel pixels.
type Line struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Frame is a value snapshot of everything a display needs. It never shares
// memory with the engine.
type Frame struct {
	Screen    Screen   `json:"screen"`
	Flags     string   `json:"flags"`
	Sprites   []Sprite `json:"sprites"`
	ShipX     int      `json:"shipX"`
	Turret    [2]Line  `json:"turret"`
	Score     int      `json:"score"`
	Shield    int      `json:"shield"`
	GameTime  int      `json:"gameTime"`
	Status    bool     `json:"status"` // Time, life and score overlay
	LEDs      LEDs     `json:"leds"`
	Backlight int      `json:"backlight"`
	Tick      uint64   `json:"tick"`
}

// Frame captures the current state for rendering.
func (e *Engine) Frame() Frame {
	f := Frame{
		Screen:    e.screen(),
		Flags:     e.flags.String(),
		ShipX:     e.ship.X,
		Score:     e.score,
		Shield:    e.shield,
		GameTime:  int(e.gameTime),
		Status:    e.flags.IsPaused() && e.statusScreen,
		LEDs:      e.leds,
		Backlight: e.backlight,
		Tick:      e.ticks,
	}

	if f.Screen == ScreenIntro {
		f.Sprites = []Sprite{{Tier: object.TierAsteroid, X: e.introX, Y: e.introY, Size: config.AsteroidSize}}
		return f
	}

	for _, p := range e.pools {
		size := p.Tier.Size()
		for i := range p.Slots {
			s := p.At(i)
			if !s.State.IsDrawn() || s.State.IsBroken() {
				continue
			}
			f.Sprites = append(f.Sprites, Sprite{Tier: p.Tier, X: int(s.X), Y: int(s.Y), Size: int(size)})
		}
	}

	baseX, baseY := e.ship.BarrelBase()
	tipX, tipY := e.ship.AimPoint(e.turret)
	for k := range f.Turret {
		f.Turret[k] = Line{X0: int(baseX) + k, Y0: int(baseY), X1: int(tipX) + k, Y1: int(tipY)}
	}
	return f
}

func (e *Engine) screen() Screen {
	switch {
	case e.flags.IsQuit():
		return ScreenQuit
	case e.flags.InIntro():
		return ScreenIntro
	case e.flags.IsAwaiting():
		return ScreenAwaiting
	case e.flags.Has(Over | OverChoiceShown):
		return ScreenOverChoice
	case e.flags.IsOver():
		return ScreenGameOver
	default:
		return ScreenPlaying
	}
}
