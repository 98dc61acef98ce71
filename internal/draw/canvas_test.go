package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/object"
)

func TestCanvasCellHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 1)
	c.Set(2, 0)
	c.Set(2, 1)

	want := []rune{BlockUpperHalf, BlockLowerHalf, BlockFull, BlockEmpty}
	for col, w := range want {
		if got := c.Cell(col, 0); got != w {
			t.Errorf("Cell(%d, 0) = %q, want %q", col, got, w)
		}
	}
	if got := c.Cell(9, 9); got != BlockEmpty {
		t.Errorf("out of range cell = %q", got)
	}
}

func TestScaledCanvasFillsBlock(t *testing.T) {
	// 2x horizontal and 1x vertical: panel 4x4 on 8 cols x 2 rows.
	c := NewScaledCanvas(8, 2, 4, 4)
	c.Set(1, 0)
	if c.Cell(2, 0) != BlockUpperHalf || c.Cell(3, 0) != BlockUpperHalf {
		t.Fatalf("scaled pixel did not cover two columns: %q %q", c.Cell(2, 0), c.Cell(3, 0))
	}
	if c.Cell(1, 0) != BlockEmpty || c.Cell(4, 0) != BlockEmpty {
		t.Fatal("scaled pixel leaked into neighbours")
	}
}

func TestCanvasIgnoresOffPanel(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 4)
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if c.Cell(col, row) != BlockEmpty {
				t.Fatalf("cell (%d,%d) lit by off-panel Set", col, row)
			}
		}
	}
}

func TestDrawBitmapMSBFirst(t *testing.T) {
	c := NewCanvas(8, 1)
	c.DrawBitmap(0, 0, []byte{0x81}, 8)
	if c.Cell(0, 0) != BlockUpperHalf || c.Cell(7, 0) != BlockUpperHalf {
		t.Fatal("expected first and last columns lit")
	}
	for col := 1; col < 7; col++ {
		if c.Cell(col, 0) != BlockEmpty {
			t.Fatalf("column %d lit", col)
		}
	}

	// Width limits how many bits are read.
	c.Clear()
	c.DrawBitmap(0, 0, []byte{0xFF}, 3)
	if c.Cell(3, 0) != BlockEmpty {
		t.Fatal("bit beyond width drawn")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(9, 9, 0, 0)
	for i := 0; i < 10; i++ {
		if !c.pixels[i*10+i] {
			t.Fatalf("diagonal pixel %d not set", i)
		}
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), string(BlockUpperHalf)) {
		t.Fatalf("first render missing pixel: %q", buf.String())
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged canvas re-rendered %d bytes", buf.Len())
	}

	c.Invalidate(1, 1, 1)
	c.Render(&buf)
	if buf.String() != "\033[1;1H"+string(BlockUpperHalf) {
		t.Fatalf("invalidated render = %q", buf.String())
	}
}

func TestPaintBarrierAndShip(t *testing.T) {
	c := NewCanvas(config.ScreenWidth, config.ScreenHeight/2)
	f := loop.Frame{Screen: loop.ScreenPlaying, ShipX: 10}
	Paint(c, f)

	row := config.ShieldLine / 2
	top := config.ShieldLine%2 == 0
	for x := 0; x < config.ScreenWidth; x++ {
		cell := c.Cell(x, row)
		lit := cell == BlockFull || (top && cell == BlockUpperHalf) || (!top && cell == BlockLowerHalf)
		if lit != (x%2 == 0) {
			t.Fatalf("barrier pixel %d lit=%v", x, lit)
		}
	}

	// Ship row 0 is 0x18: columns 3 and 4.
	shipRow := config.ShipY / 2
	if c.Cell(13, shipRow) == BlockEmpty || c.Cell(14, shipRow) == BlockEmpty {
		t.Fatal("ship top row not drawn")
	}
}

func TestPaintIntroHasNoShip(t *testing.T) {
	c := NewCanvas(config.ScreenWidth, config.ScreenHeight/2)
	f := loop.Frame{
		Screen:  loop.ScreenIntro,
		Sprites: []loop.Sprite{{Tier: object.TierAsteroid, X: 40, Y: 0, Size: 7}},
	}
	Paint(c, f)
	if c.Cell(43, 0) == BlockEmpty {
		t.Fatal("intro asteroid not drawn")
	}
	if c.Cell(41, config.ShipY/2) != BlockEmpty {
		t.Fatal("ship drawn on intro screen")
	}
}

func TestTextsForScreens(t *testing.T) {
	tests := []struct {
		screen loop.Screen
		want   string
	}{
		{loop.ScreenIntro, "SPACE PEW PEW"},
		{loop.ScreenQuit, "GOODBYE"},
		{loop.ScreenAwaiting, "Receiving"},
		{loop.ScreenGameOver, "GAME OVER"},
		{loop.ScreenOverChoice, "SW1 - Restart"},
	}
	for _, tt := range tests {
		t.Run(string(tt.screen), func(t *testing.T) {
			var found bool
			for _, txt := range Texts(loop.Frame{Screen: tt.screen}) {
				if txt.S == tt.want {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing %q", tt.want)
			}
		})
	}
}

func TestTerminalPresent(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, FixedTermSize(config.ScreenWidth, config.ScreenHeight/2))
	if err := term.Present(loop.Frame{Screen: loop.ScreenIntro}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "SPACE PEW PEW") {
		t.Fatal("intro title not written")
	}

	buf.Reset()
	if err := term.Present(loop.Frame{Screen: loop.ScreenIntro}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\033[2J") {
		t.Fatal("same screen cleared the terminal")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(config.MaxTermWidth+10, config.MaxTermHeight+4)
	if w != config.MaxTermWidth || h != config.MaxTermHeight || col != 5 || row != 2 {
		t.Fatalf("clampTermSize = %d %d %d %d", w, h, col, row)
	}
}

func TestPaintProjectileBlock(t *testing.T) {
	c := NewCanvas(config.ScreenWidth, config.ScreenHeight/2)
	Paint(c, loop.Frame{
		Screen:  loop.ScreenPlaying,
		Sprites: []loop.Sprite{{Tier: object.TierProjectile, X: 10, Y: 10, Size: config.ProjectileSize}},
	})
	for _, col := range []int{10, 11} {
		if got := c.Cell(col, 5); got != BlockFull {
			t.Fatalf("cell (%d,5) = %q, want full block", col, got)
		}
	}
	if got := c.Cell(12, 5); got != BlockEmpty {
		t.Fatalf("cell (12,5) = %q, want empty", got)
	}
}
