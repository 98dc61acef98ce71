// Package draw renders engine frames: an ANSI half-block panel for any
// terminal stream and a tcell screen for local play.
package draw

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Sprite bitmaps, one byte per row, most significant bit leftmost.
var (
	shipSprite     = []byte{0x18, 0x3C, 0x3C, 0x7F, 0x7E, 0xDB, 0xC3}
	asteroidSprite = []byte{0x10, 0x38, 0x7C, 0xFE, 0x7C, 0x38, 0x10}
	boulderSprite  = []byte{0x20, 0x70, 0xF8, 0x70, 0x20}
	fragmentSprite = []byte{0x40, 0xE0, 0x40}
)

const shipSpriteWidth = 8

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// step returns the unit increment that moves from a toward b.
func step(a, b int) int {
	if a > b {
		return -1
	}
	return 1
}
