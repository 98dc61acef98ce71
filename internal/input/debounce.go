package input

// Control is one physical digital input line.
type Control int

const (
	JoyUp Control = iota
	JoyDown
	JoyLeft
	JoyRight
	JoyCenter
	SW1
	SW2
	NumControls
)

var controlNames = [NumControls]string{"up", "down", "left", "right", "center", "sw1", "sw2"}

func (c Control) String() string {
	if c < 0 || c >= NumControls {
		return "unknown"
	}
	return controlNames[c]
}

// Lines is one raw sample of every control.
type Lines [NumControls]bool

// debounceMask selects the 4-bit history kept per control.
const debounceMask = 0x0f

// Edge is a change in a control's stable state.
type Edge struct {
	Control Control
	Closed  bool // true on press, false on release
}

// Debouncer turns raw line samples into stable states. Each control keeps
// the last four samples; all zero forces the stable state open, all ones
// with the current sample active makes it closed, anything else holds.
type Debouncer struct {
	history [NumControls]uint8
	stable  [NumControls]bool
	prev    [NumControls]bool
}

// Sample shifts one raw sample per control into the history.
func (d *Debouncer) Sample(raw Lines) {
	d.prev = d.stable
	for c := range raw {
		bit := uint8(0)
		if raw[c] {
			bit = 1
		}
		h := ((d.history[c] << 1) | bit) & debounceMask
		d.history[c] = h
		switch {
		case h == 0:
			d.stable[c] = false
		case h == debounceMask && raw[c]:
			d.stable[c] = true
		}
	}
}

// Closed reports the stable state of c.
func (d *Debouncer) Closed(c Control) bool {
	return d.stable[c]
}

// Edges appends the transitions produced by the last Sample to dst.
// A transition is reported on the sample that caused it and never again.
func (d *Debouncer) Edges(dst []Edge) []Edge {
	for c := Control(0); c < NumControls; c++ {
		if d.stable[c] != d.prev[c] {
			dst = append(dst, Edge{Control: c, Closed: d.stable[c]})
		}
	}
	return dst
}

// Pressed reports whether c went from open to closed on the last Sample.
func (d *Debouncer) Pressed(c Control) bool {
	return d.stable[c] && !d.prev[c]
}
