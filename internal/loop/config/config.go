// Package config centralizes all tunable game parameters.
package config

import "time"

// Display geometry. The game draws onto an 84x48 monochrome panel; the
// playfield ends at the shield barrier drawn on row 39.
const (
	ScreenWidth  = 84
	ScreenHeight = 48
	ShieldLine   = 39 // Entities whose box passes this row hit the shield
)

// Pool capacities. Each parent owns exactly two children in the next tier.
const (
	MaxAsteroids   = 3
	MaxBoulders    = MaxAsteroids * 2
	MaxFragments   = MaxBoulders * 2
	MaxProjectiles = 30
)

// Entity box sizes (width == height).
const (
	AsteroidSize   = 7
	BoulderSize    = 5
	FragmentSize   = 3
	ProjectileSize = 2
	ShipWidth      = 9
)

// Pooled (off-screen) resting rows.
const (
	PoolY           = -10.0
	ProjectilePoolY = -15.0
)

// Scoring
const (
	ScoreAsteroid = 1
	ScoreBoulder  = 2
	ScoreFragment = 4
)

// Player
const (
	InitialShield = 5
	ShipStartX    = 42 - 4
	ShipY         = 41
	ShipSpeed     = 15 // Fixed rate for ship and projectile movement
	TurretY       = 41
	TurretBaseY   = 44 // Row the turret barrel starts from
	TurretMin     = -2
	TurretMax     = 2
)

// Movement throttle: an entity moves once counter*rate exceeds this.
const MoveThreshold = 10

// Child kinematics.
const (
	ChildSpeed        = 0.8
	ChildHeadingLoMin = 60 // degrees
	ChildHeadingLoMax = 90
	ChildHeadingHiMin = 90
	ChildHeadingHiMax = 120
)

// Hardware clock. One timer overflow advances every software timer by Delta.
const (
	CPUFreq    = 8000000.0
	Prescale   = 64.0
	TimerScale = 256.0
	Delta      = TimerScale * Prescale / CPUFreq // 2.048ms
)

// TickPeriod is Delta as a wall-clock duration.
const TickPeriod = time.Duration(Delta * float64(time.Second))

// FrameTicks is how many hardware ticks make one simulation step.
// Timers and debouncing run every tick; movement and collisions every step.
const FrameTicks = 16

// Software timer thresholds (seconds).
const (
	FireCooldown      = 0.2
	FireTimerWrap     = 1.0
	SpawnTimerWrap    = 20.0
	WaveTimerWrap     = 10.0
	WaveStartDelay    = 2.0
	LEDTimerWrap      = 40.0
	LEDOnTime         = 0.5
	OverrideExpiry    = 1.0
	GameOverSequence  = 2.0
	SpawnDelayStepMin = 1  // tenths of a second above 0.1
	SpawnDelayStepMax = 15 // tenths of a second above 0.1
)

// Backlight PWM range.
const (
	BacklightMax = 1023
)

// Debug override ranges.
const (
	TurretOverrideMin = -60
	TurretOverrideMax = 60
	TurretOverrideDiv = 30
	SpeedOverrideMax  = 100
	SpeedOverrideDiv  = 10
	InputBufferSize   = 12
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxCatchUpTicks       = 64 // Drop ticks beyond this after a stall
	QuitScreenLinger      = 2 * time.Second
)

// Terminal render limits. The panel is scaled to fit but never beyond these.
const (
	MaxTermWidth  = 168
	MaxTermHeight = 48

	// Rows under the panel that show debug channel replies.
	ConsoleMinRows = 3
	ConsoleMaxRows = 10
)

// Session registry and spectators
const (
	TopScoresCount   = 5                      // Leaderboard entries in a snapshot
	SpectateInterval = 100 * time.Millisecond // Minimum gap between published frames per session
	ShutdownPoll     = 200 * time.Millisecond
)

// Inactivity (SSH consoles)
const (
	InactivityWarnUser       = 240 // Seconds
	InactivityDisconnectUser = 300 // Seconds
)
