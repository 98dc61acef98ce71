package loop

import "strings"

// Flags is the persistent game state. Flags combine; only the command
// dispatcher and the terminal-condition check change them.
type Flags uint16

const (
	Intro           Flags = 1 << iota // Title screen, before the first start
	Started                           // At least one game has been started
	Paused                            // Simulation frozen
	AwaitingInput                     // Debug channel is capturing a number
	Cheated                           // A debug override has been used
	Over                              // Shield exhausted
	OverChoiceShown                   // Game-over sequence finished, restart or quit
	Quit                              // Terminal
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Intro, "intro"},
	{Started, "started"},
	{Paused, "paused"},
	{AwaitingInput, "awaiting-input"},
	{Cheated, "cheated"},
	{Over, "over"},
	{OverChoiceShown, "over-choice"},
	{Quit, "quit"},
}

// Has reports whether all flags in f are set.
func (s Flags) Has(f Flags) bool {
	return s&f == f
}

func (s Flags) IsPaused() bool   { return s.Has(Paused) }
func (s Flags) IsCheated() bool  { return s.Has(Cheated) }
func (s Flags) IsOver() bool     { return s.Has(Over) }
func (s Flags) IsQuit() bool     { return s.Has(Quit) }
func (s Flags) InIntro() bool    { return s.Has(Intro) }
func (s Flags) IsAwaiting() bool { return s.Has(AwaitingInput) }

// Playing reports whether the simulation runs normally.
func (s Flags) Playing() bool {
	return s&(Intro|Paused|Over|Quit) == 0
}

// Simulating reports whether entities move this step. A cheated game keeps
// moving while paused so debug placements can be observed.
func (s Flags) Simulating() bool {
	if s&(Intro|AwaitingInput|Over|Quit) != 0 {
		return false
	}
	return !s.IsPaused() || s.IsCheated()
}

func (s Flags) String() string {
	var names []string
	for _, f := range flagNames {
		if s.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "playing"
	}
	return strings.Join(names, "|")
}

// Transitions. Each keeps Over => Paused.

func (s *Flags) set(f Flags)   { *s |= f }
func (s *Flags) clear(f Flags) { *s &^= f }

// enterOver marks the game lost. The game stays paused until restarted.
func (s *Flags) enterOver() {
	s.set(Over | Paused)
}

// togglePause flips Paused unless a capture or game over holds it.
func (s *Flags) togglePause() bool {
	if s.Has(AwaitingInput) || s.Has(Over) || s.Has(Intro) {
		return false
	}
	*s ^= Paused
	return true
}

// restart clears per-game flags. A cheated game restarts paused with the
// cheat cleared; otherwise play resumes.
func (s *Flags) restart() {
	cheated := s.Has(Cheated)
	s.clear(Intro | Over | OverChoiceShown | AwaitingInput | Cheated | Paused)
	s.set(Started)
	if cheated {
		s.set(Paused)
	}
}
