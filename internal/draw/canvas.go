package draw

import (
	"fmt"
	"io"
	"strings"
)

// Canvas is a monochrome pixel panel rendered with half-block characters,
// giving 2x vertical resolution per terminal row. Logical panel pixels are
// scaled up to whole blocks of terminal sub-pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	prev           []rune // Last rendered cell per [row * termWidth + col], 0 = unknown

	// Scaling from panel pixels to sub-pixels
	logicalWidth  int
	logicalHeight int
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
}

// NewCanvas creates a canvas whose panel maps 1:1 onto terminal sub-pixels.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, width, height*2)
}

// NewScaledCanvas creates a canvas that scales a logicalWidth x logicalHeight
// panel onto termWidth x termHeight terminal cells.
func NewScaledCanvas(termWidth, termHeight, logicalWidth, logicalHeight int) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the panel size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.prev = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / float64(c.logicalWidth)
	c.scaleY = float64(subPixelHeight) / float64(c.logicalHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// Invalidate marks n cells starting at 1-based terminal (col, row) as
// overwritten by text, so the next Render repaints them.
func (c *Canvas) Invalidate(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = 0
		}
	}
}

// setPixel sets a sub-pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Set lights panel pixel (x, y). Off-panel coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || x >= c.logicalWidth || y < 0 || y >= c.logicalHeight {
		return
	}
	x0 := int(float64(x) * c.scaleX)
	x1 := int(float64(x+1) * c.scaleX)
	y0 := int(float64(y) * c.scaleY)
	y1 := int(float64(y+1) * c.scaleY)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// Fill lights every panel pixel.
func (c *Canvas) Fill() {
	for i := range c.pixels {
		c.pixels[i] = true
	}
}

// FillRect lights a w x h block of panel pixels with its top-left at (x, y).
func (c *Canvas) FillRect(x, y, w, h int) {
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			c.Set(x+i, y+j)
		}
	}
}

// DrawLine draws a line between two panel pixels using Bresenham's algorithm.
// Both endpoints are drawn.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, sx := abs(x1-x0), step(x0, x1)
	dy, sy := -abs(y1-y0), step(y0, y1)
	for e := dx + dy; ; {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawBitmap draws a sprite whose rows are bytes, most significant bit
// leftmost, width bits wide, with its top-left at (x, y).
func (c *Canvas) DrawBitmap(x, y int, rows []byte, width int) {
	for r, bits := range rows {
		for col := 0; col < width; col++ {
			if bits&(0x80>>col) != 0 {
				c.Set(x+col, y+r)
			}
		}
	}
}

// Cell returns the half-block character for 0-based terminal cell (col, row).
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return BlockEmpty
	}
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	}
	return BlockEmpty
}

// Render writes the cells that changed since the previous Render. Runs of
// adjacent changed cells share one cursor move.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	next := -1 // Cell the cursor sits on after the last write
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch := c.Cell(col, row)
			i := row*c.termWidth + col
			if c.prev[i] == ch {
				continue
			}
			c.prev[i] = ch
			if i != next || col == 0 {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}
			c.renderBuf.WriteRune(ch)
			next = i + 1
		}
	}
	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder frames the canvas when it is centered in a larger terminal.
// Horizontal bars need a row offset, vertical bars a column offset; corners
// appear only when both fit.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	ends := c.offsetRow >= 1
	if !sides && !ends {
		return
	}
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1

	var b strings.Builder
	if ends {
		bar := strings.Repeat("─", c.termWidth)
		if sides {
			fmt.Fprintf(&b, "\033[%d;%dH┌%s┐\033[%d;%dH└%s┘", top, left, bar, bottom, left, bar)
		} else {
			fmt.Fprintf(&b, "\033[%d;%dH%s\033[%d;%dH%s", top, left+1, bar, bottom, left+1, bar)
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, b.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// PanelToTerminal converts a panel pixel to its 1-based terminal cell (col, row),
// relative to the canvas origin.
func (c *Canvas) PanelToTerminal(x, y int) (col, row int) {
	px := int(float64(x) * c.scaleX)
	py := int(float64(y) * c.scaleY)
	return px + 1, py/2 + 1
}
