package draw

import (
	"io"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
	"github.com/tomz197/pewpew/internal/physics"
)

// Terminal presents frames as ANSI half-block art on any writer, including
// an SSH channel. The panel is scaled to the terminal, never beyond
// MaxTermWidth x MaxTermHeight, and centered with a border when smaller.
// The bottom rows show the newest lines of the console.
type Terminal struct {
	w            io.Writer
	canvas       *Canvas
	fw           *frameWriter
	termSizeFunc TermSizeFunc
	lastScreen   loop.Screen
	lastText     []Text

	console        *Console
	consoleVersion uint64
	consoleDirty   bool
	termWidth      int
	termHeight     int
}

// NewTerminal creates an ANSI display writing to w. A nil sizeFunc uses
// the size of os.Stdout.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = config.ScreenWidth, config.ScreenHeight/2
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight-consoleRows(termHeight))

	t := &Terminal{
		w:            w,
		canvas:       NewScaledCanvas(renderWidth, renderHeight, config.ScreenWidth, config.ScreenHeight),
		fw:           newFrameWriter(w),
		termSizeFunc: sizeFunc,
		console:      NewConsole(config.ConsoleMaxRows),
		consoleDirty: true,
		termWidth:    termWidth,
		termHeight:   termHeight,
	}
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.fw.setOffset(offsetCol, offsetRow)
	return t
}

// Console returns the writer whose lines are shown under the panel.
func (t *Terminal) Console() *Console {
	return t.console
}

// Open prepares the terminal: cursor hidden, screen cleared.
func (t *Terminal) Open() error {
	_, err := io.WriteString(t.w, seqHideCursor+seqClear)
	return err
}

// Close restores the cursor and clears the screen.
func (t *Terminal) Close() error {
	_, err := io.WriteString(t.w, seqClear+seqShowCursor)
	return err
}

// Present draws one frame.
func (t *Terminal) Present(f loop.Frame) error {
	t.updateScreen()

	// On screen transitions do a full clear so text from the previous
	// screen does not persist.
	if f.Screen != t.lastScreen {
		t.fw.clear()
		t.canvas.ForceRedraw()
		t.consoleDirty = true
		t.lastScreen = f.Screen
	}

	// Repaint cells that held text last frame.
	for _, txt := range t.lastText {
		col, row := t.textPos(txt)
		t.canvas.Invalidate(col, row, len(txt.S))
	}

	Paint(t.canvas, f)
	t.canvas.Render(t.fw)
	t.canvas.RenderBorder(t.fw)

	texts := Texts(f)
	for _, txt := range texts {
		col, row := t.textPos(txt)
		t.fw.text(col, row, txt.S, txt.Inverse)
		t.canvas.Invalidate(col, row, len(txt.S))
	}
	t.lastText = texts

	t.renderConsole()
	return t.fw.flush()
}

// renderConsole repaints the console rows when a line arrived or the screen
// was cleared. Newer lines sit lower.
func (t *Terminal) renderConsole() {
	rows := consoleRows(t.termHeight)
	lines, version := t.console.Tail(rows)
	if version == t.consoleVersion && !t.consoleDirty {
		return
	}
	t.consoleVersion = version
	t.consoleDirty = false

	top := t.termHeight - rows
	blank := rows - len(lines)
	for i := 0; i < rows; i++ {
		var s string
		if i >= blank {
			s = lines[i-blank]
		}
		if len(s) > t.termWidth {
			s = s[:max(t.termWidth, 0)]
		}
		t.fw.line(top+i+1, s)
	}
}

// consoleRows returns how many terminal rows the console takes. Tall
// terminals give it the space the panel does not need at full size.
func consoleRows(termHeight int) int {
	return physics.ClampInt(termHeight-config.ScreenHeight/2, config.ConsoleMinRows, config.ConsoleMaxRows)
}

// textPos returns the 1-based canvas cell where txt starts.
func (t *Terminal) textPos(txt Text) (int, int) {
	col, row := t.canvas.PanelToTerminal(txt.X, txt.Y)
	col -= len(txt.S) / 2
	if col < 1 {
		col = 1
	}
	return col, row
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (t *Terminal) updateScreen() {
	termWidth, termHeight, err := t.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight-consoleRows(termHeight))
	resized := termWidth != t.termWidth || termHeight != t.termHeight
	t.termWidth, t.termHeight = termWidth, termHeight

	if resized || renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.fw.clear()
		t.canvas.ForceRedraw()
		t.consoleDirty = true
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.fw.setOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
