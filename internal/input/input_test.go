package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func sampleN(d *Debouncer, raw Lines, n int) []Edge {
	var edges []Edge
	for i := 0; i < n; i++ {
		d.Sample(raw)
		edges = d.Edges(edges)
	}
	return edges
}

func TestDebounceHeldOneEdge(t *testing.T) {
	var d Debouncer
	var raw Lines
	raw[JoyUp] = true

	edges := sampleN(&d, raw, 3)
	if len(edges) != 0 {
		t.Fatalf("edge after 3 samples: %v", edges)
	}
	edges = sampleN(&d, raw, 1)
	if len(edges) != 1 || edges[0] != (Edge{Control: JoyUp, Closed: true}) {
		t.Fatalf("got %v, want one closed edge", edges)
	}
	if !d.Pressed(JoyUp) {
		t.Fatal("Pressed = false on the closing sample")
	}
	edges = sampleN(&d, raw, 50)
	if len(edges) != 0 {
		t.Fatalf("held control repeated edges: %v", edges)
	}
	if !d.Closed(JoyUp) {
		t.Fatal("held control not closed")
	}
}

func TestDebounceReleaseOneEdge(t *testing.T) {
	var d Debouncer
	var held Lines
	held[SW1] = true
	sampleN(&d, held, 4)

	edges := sampleN(&d, Lines{}, 3)
	if len(edges) != 0 {
		t.Fatalf("release edge before 4 samples: %v", edges)
	}
	edges = sampleN(&d, Lines{}, 10)
	if len(edges) != 1 || edges[0] != (Edge{Control: SW1, Closed: false}) {
		t.Fatalf("got %v, want one open edge", edges)
	}
}

func TestDebounceBounceNoEdge(t *testing.T) {
	tests := []struct {
		name    string
		pattern []bool
	}{
		{"single tick", []bool{true}},
		{"three ticks", []bool{true, true, true}},
		{"chatter", []bool{true, false, true, true, false, true, true, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Debouncer
			var edges []Edge
			for _, level := range tt.pattern {
				var raw Lines
				raw[JoyCenter] = level
				d.Sample(raw)
				edges = d.Edges(edges)
			}
			edges = sampleN(&d, Lines{}, 8)
			if len(edges) != 0 {
				t.Fatalf("bounce produced edges: %v", edges)
			}
		})
	}
}

func TestDebounceBounceWhileClosed(t *testing.T) {
	var d Debouncer
	var held Lines
	held[JoyLeft] = true
	sampleN(&d, held, 4)

	var edges []Edge
	for _, level := range []bool{false, true, false, false, true} {
		var raw Lines
		raw[JoyLeft] = level
		d.Sample(raw)
		edges = d.Edges(edges)
	}
	if len(edges) != 0 {
		t.Fatalf("short release produced edges: %v", edges)
	}
}

func TestDebounceIndependentControls(t *testing.T) {
	var d Debouncer
	var raw Lines
	raw[JoyUp] = true
	raw[SW2] = true
	edges := sampleN(&d, raw, 4)
	if len(edges) != 2 {
		t.Fatalf("got %v, want two edges", edges)
	}
	if d.Closed(JoyDown) {
		t.Fatal("untouched control closed")
	}
}

func TestReadInputArrowsAndBytes(t *testing.T) {
	s := NewStream()
	s.Push([]byte("\x1b[Aw z]]-")...)
	now := time.Now()
	in := s.read(now)

	if !in.Lines[JoyUp] || !in.Lines[JoyCenter] || !in.Lines[SW1] {
		t.Fatalf("lines = %v", in.Lines)
	}
	if in.Lines[JoyDown] || in.Lines[SW2] {
		t.Fatalf("unexpected lines = %v", in.Lines)
	}
	if got, want := string(in.Bytes), "w z]]-"; got != want {
		t.Fatalf("bytes = %q, want %q", got, want)
	}
	if in.Turret != 2 || in.Speed != -1 {
		t.Fatalf("knobs = %d,%d, want 2,-1", in.Turret, in.Speed)
	}
}

func TestReadInputHold(t *testing.T) {
	s := NewStream()
	s.Push('\x1b', '[', 'D')
	now := time.Now()
	if in := s.read(now); !in.Lines[JoyLeft] {
		t.Fatal("left not held on press")
	}
	if in := s.read(now.Add(keyHoldDuration / 2)); !in.Lines[JoyLeft] {
		t.Fatal("left released inside hold window")
	}
	if in := s.read(now.Add(keyHoldDuration)); in.Lines[JoyLeft] {
		t.Fatal("left still held after hold window")
	}
}

func TestStartStreamEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))
	deadline := time.Now().Add(time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		got = append(got, in.Bytes...)
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if string(got) != "q" {
		t.Fatalf("bytes = %q, want %q", got, "q")
	}
	if !ReadInput(s).Closed {
		t.Fatal("stream not closed after EOF")
	}
}

func TestKnobs(t *testing.T) {
	k := NewKnobs()
	if k.Turret() != 0 {
		t.Fatalf("centered turret = %d, want 0", k.Turret())
	}
	k.SetRaw(0, 0)
	if k.Turret() != -2 || k.Speed() != 0 {
		t.Fatalf("min knobs = %d,%v", k.Turret(), k.Speed())
	}
	k.SetRaw(5000, 5000)
	if k.Turret() != 2 || k.Speed() != 10 {
		t.Fatalf("max knobs = %d,%v", k.Turret(), k.Speed())
	}
	k.NudgeTurret(-100)
	if k.Turret() != -2 {
		t.Fatalf("turret after nudge = %d", k.Turret())
	}
	k.NudgeSpeed(-2)
	if k.Speed() >= 10 {
		t.Fatalf("speed after nudge = %v", k.Speed())
	}
}
