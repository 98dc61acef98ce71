package draw

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

// TcellDisplay presents frames on a local tcell screen. Key events are
// translated back into the byte stream the ANSI path reads, so both
// displays drive the engine through the same input.Stream.
type TcellDisplay struct {
	screen  tcell.Screen
	canvas  *Canvas
	stream  *input.Stream
	console *Console

	style tcell.Style
	dim   tcell.Style

	once sync.Once
	done chan struct{}
}

// NewTcellDisplay initializes the terminal and starts forwarding key
// events into stream.
func NewTcellDisplay(stream *input.Stream) (*TcellDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newTcellDisplay(screen, stream)
}

func newTcellDisplay(screen tcell.Screen, stream *input.Stream) (*TcellDisplay, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	d := &TcellDisplay{
		screen:  screen,
		canvas:  NewCanvas(config.ScreenWidth, config.ScreenHeight/2),
		stream:  stream,
		console: NewConsole(config.ConsoleMaxRows),
		style:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		dim:     tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
		done:    make(chan struct{}),
	}
	go d.pump()
	return d, nil
}

// Done is closed once the screen stops delivering events.
func (d *TcellDisplay) Done() <-chan struct{} {
	return d.done
}

// Console returns the writer whose lines are shown under the panel.
func (d *TcellDisplay) Console() *Console {
	return d.console
}

// Present draws one frame.
func (d *TcellDisplay) Present(f loop.Frame) error {
	style := d.style
	if f.Backlight < config.BacklightMax/2 {
		style = d.dim
	}

	Paint(d.canvas, f)
	for row := 0; row < d.canvas.TerminalHeight(); row++ {
		for col := 0; col < d.canvas.TerminalWidth(); col++ {
			d.screen.SetContent(col, row, d.canvas.Cell(col, row), nil, style)
		}
	}

	for _, txt := range Texts(f) {
		col, row := d.canvas.PanelToTerminal(txt.X, txt.Y)
		col -= len(txt.S)/2 + 1
		row--
		if col < 0 {
			col = 0
		}
		ts := style
		if txt.Inverse {
			ts = ts.Reverse(true)
		}
		for i, r := range txt.S {
			d.screen.SetContent(col+i, row, r, nil, ts)
		}
	}

	d.drawConsole()
	d.screen.Show()
	return nil
}

// drawConsole fills the rows under the panel with the newest console lines.
func (d *TcellDisplay) drawConsole() {
	width, height := d.screen.Size()
	top := d.canvas.TerminalHeight()
	rows := min(height-top, config.ConsoleMaxRows)
	if rows <= 0 {
		return
	}
	lines, _ := d.console.Tail(rows)
	blank := rows - len(lines)
	for i := 0; i < rows; i++ {
		var s string
		if i >= blank {
			s = lines[i-blank]
		}
		for col := 0; col < width; col++ {
			r := ' '
			if col < len(s) {
				r = rune(s[col])
			}
			d.screen.SetContent(col, top+i, r, nil, d.style)
		}
	}
}

// Close restores the terminal.
func (d *TcellDisplay) Close() error {
	d.once.Do(d.screen.Fini)
	return nil
}

// pump forwards screen events until the screen is finalized.
func (d *TcellDisplay) pump() {
	defer close(d.done)
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if b := keyBytes(ev); len(b) > 0 {
				d.stream.Push(b...)
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

// keyBytes maps a key event onto the bytes a raw terminal would send.
func keyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyUp:
		return []byte("\x1b[A")
	case tcell.KeyDown:
		return []byte("\x1b[B")
	case tcell.KeyRight:
		return []byte("\x1b[C")
	case tcell.KeyLeft:
		return []byte("\x1b[D")
	case tcell.KeyEnter:
		return []byte{'\r'}
	case tcell.KeyCtrlC:
		return []byte{'q'}
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0 && r < 0x80 {
			return []byte{byte(r)}
		}
	}
	return nil
}
