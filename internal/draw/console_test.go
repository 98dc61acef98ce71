package draw

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/pewpew/internal/input"
	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

func TestConsoleKeepsNewestLines(t *testing.T) {
	c := NewConsole(3)
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(c, "line %d\r\n", i)
	}
	fmt.Fprint(c, "partial")

	lines, v := c.Tail(10)
	want := []string{"line 3", "line 4", "line 5"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	if v != 5 {
		t.Fatalf("version = %d, want 5", v)
	}

	fmt.Fprint(c, " done\n")
	lines, _ = c.Tail(1)
	if len(lines) != 1 || lines[0] != "partial done" {
		t.Fatalf("tail = %q", lines)
	}
}

func TestTerminalShowsConsole(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, FixedTermSize(config.ScreenWidth, 30))
	fmt.Fprint(term.Console(), "Shield Life Remaining: 5\r\n")

	if err := term.Present(loop.Frame{Screen: loop.ScreenPlaying}); err != nil {
		t.Fatal(err)
	}
	// 30 rows leave 6 for the console; the only line sits on the last one.
	want := "\033[30;1H" + seqEraseLine + "Shield Life Remaining: 5"
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("console line missing from %q", buf.String())
	}

	buf.Reset()
	if err := term.Present(loop.Frame{Screen: loop.ScreenPlaying}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), seqEraseLine) {
		t.Fatal("unchanged console repainted")
	}
}

func TestConsoleRows(t *testing.T) {
	tests := []struct{ height, want int }{
		{10, config.ConsoleMinRows},
		{config.ScreenHeight/2 + 5, 5},
		{100, config.ConsoleMaxRows},
	}
	for _, tt := range tests {
		if got := consoleRows(tt.height); got != tt.want {
			t.Errorf("consoleRows(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestTcellShowsConsole(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	d, err := newTcellDisplay(screen, input.NewStream())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	fmt.Fprint(d.Console(), "Score: 3\r\n")
	if err := d.Present(loop.Frame{Screen: loop.ScreenPlaying}); err != nil {
		t.Fatal(err)
	}

	_, height := screen.Size()
	row := min(height-1, d.canvas.TerminalHeight()+config.ConsoleMaxRows-1)
	var got []rune
	for col := 0; col < len("Score: 3"); col++ {
		r, _, _, _ := screen.GetContent(col, row)
		got = append(got, r)
	}
	if string(got) != "Score: 3" {
		t.Fatalf("row %d = %q", row, string(got))
	}
}
