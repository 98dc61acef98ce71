package loop

import (
	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/object"
)

const helpText = "********Controls********\r\n" +
	"'a' - move spaceship left\r\n" +
	"'d' - move spaceship right\r\n" +
	"'w' - fire plasma bolts\r\n" +
	"'s' - send and display game status\r\n" +
	"'r' - start/reset game\r\n" +
	"'p' - pause game\r\n" +
	"'q' - quit\r\n" +
	"'o' - set aim of the turret\r\n" +
	"'m' - set the speed of the game\r\n" +
	"'l' - set the remaining life of the deflector shield\r\n" +
	"'g' - set the score\r\n" +
	"'h' - move spaceship to coordinate\r\n" +
	"'j' - place asteroid at coordinate\r\n" +
	"'k' - place boulder at coordinate\r\n" +
	"'i' - place fragment at coordinate\r\n" +
	"'?' - show this screen\r\n"

// HandleByte dispatches one byte from the debug channel. While a number is
// being captured every byte goes to the capture buffer instead.
func (e *Engine) HandleByte(b byte) {
	if e.flags.IsQuit() {
		return
	}
	if e.flags.IsAwaiting() {
		if v, done := e.prompt.feed(b); done {
			e.SubmitInput(v)
		}
		return
	}

	// Before the first start and after losing, only start/restart and quit
	// are live.
	if e.flags.InIntro() || e.flags.IsOver() {
		switch b {
		case 'r':
			e.start()
		case 'q':
			e.Quit()
		case '?':
			if e.flags.InIntro() {
				e.print(helpText)
			}
		}
		return
	}

	switch b {
	case 'a':
		e.ship.SteerLeft()
	case 'd':
		e.ship.SteerRight()
	case 'w':
		e.fire()
	case 's':
		e.status()
	case 'r':
		e.start()
	case 'p':
		e.resume()
	case 'q':
		e.Quit()
	case 'o':
		e.request(cmdTurret, "Enter turret heading: - (-60 to 60)\r\n")
	case 'm', 'l', 'g':
		e.request(b, "Input new value: \r\n")
	case 'h', 'j', 'k', 'i':
		e.request(b, "Input x coordinates: - (0-84)\r\n")
	case '?':
		e.print(helpText)
	}
}

// handleControl dispatches a debounced press of a physical control.
func (e *Engine) handleControl(c input.Control) {
	if e.flags.IsAwaiting() {
		return
	}
	if e.flags.InIntro() || e.flags.IsOver() {
		switch c {
		case input.SW1:
			e.start()
		case input.SW2:
			e.print("SW2 - quit \r\n")
			e.Quit()
		}
		return
	}

	switch c {
	case input.JoyUp:
		e.fire()
	case input.JoyDown:
		e.status()
	case input.JoyLeft:
		e.ship.SteerLeft()
	case input.JoyRight:
		e.ship.SteerRight()
	case input.JoyCenter:
		e.flags.togglePause()
	case input.SW1:
		e.start()
	case input.SW2:
		e.print("SW2 - quit \r\n")
		e.Quit()
	}
}

// start leaves the intro or restarts the game.
func (e *Engine) start() {
	e.resetGame()
	e.flags.restart()
}

// resume toggles pause from the debug channel. A cheated game is reset and
// the cheat cleared first, so play continues on a fresh field.
func (e *Engine) resume() {
	if e.flags.IsCheated() {
		e.resetGame()
		e.flags.clear(Cheated)
	}
	e.flags.togglePause()
}

// Quit ends the session. The quit screen stays up until the host exits.
func (e *Engine) Quit() {
	e.flags.set(Quit)
}

// status reports the game state on the debug channel. While paused it also
// toggles the on-screen status overlay.
func (e *Engine) status() {
	if e.flags.IsPaused() {
		e.statusScreen = !e.statusScreen
	}
	e.writeStatus()
}

func (e *Engine) writeStatus() {
	e.printf("\r\nGame Time: %d\r\n", int(e.gameTime))
	e.printf("Shield Life Remaining: %d\r\n", e.shield)
	e.printf("Score: %d\r\n", e.score)
	e.printf("Asteroid Count: %d\r\n", e.pools[object.TierAsteroid].CountMoving())
	e.printf("Boulder Count: %d\r\n", e.pools[object.TierBoulder].CountMoving())
	e.printf("Fragment Count: %d\r\n", e.pools[object.TierFragment].CountMoving())
	e.printf("Projectile Count: %d\r\n", e.pools[object.TierProjectile].CountMoving())
	e.printf("Turret angle: %d\r\n", e.turret.X*20)
	e.printf("Game Speed: %d\r\n", int(e.gameSpeed)*10)
}
