// Package input turns a terminal byte stream into the console's physical
// controls: seven digital lines, two analog knobs, and the raw bytes of the
// debug command channel.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a line is considered held after its last key press.
const keyHoldDuration = 30 * time.Millisecond

// Input is everything that arrived since the previous read.
type Input struct {
	Lines  Lines  // Raw line levels, held keys still active
	Turret int    // Turret knob notches, positive turns right
	Speed  int    // Speed knob notches, positive is faster
	Bytes  []byte // Debug channel bytes, escape sequences removed
	Closed bool   // The underlying reader is exhausted
}

// Stream delivers input bytes via a channel and tracks when each line was last pressed.
type Stream struct {
	ch     chan byte
	held   [NumControls]time.Time
	closed bool
}

// NewStream creates a stream fed only through Push.
func NewStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Push queues bytes produced by a host that does its own event decoding.
// Bytes that do not fit are dropped.
func (s *Stream) Push(b ...byte) {
	for _, c := range b {
		select {
		case s.ch <- c:
		default:
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Arrow keys arrive as CSI sequences and only drive lines; every other byte
// is both forwarded to the debug channel and applied to the emulated controls.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Closed: s.closed}
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if c, ok := arrowLine(buf[i+2]); ok {
				s.held[c] = now
				i += 2
				continue
			}
		}

		s.apply(&in, b, now)
		in.Bytes = append(in.Bytes, b)
	}

	for c := range s.held {
		in.Lines[c] = !s.held[c].IsZero() && now.Sub(s.held[c]) < keyHoldDuration
	}
	return in
}

func arrowLine(code byte) (Control, bool) {
	switch code {
	case 'A':
		return JoyUp, true
	case 'B':
		return JoyDown, true
	case 'C':
		return JoyRight, true
	case 'D':
		return JoyLeft, true
	}
	return 0, false
}

// apply maps single-byte keys onto the emulated lines and knobs.
func (s *Stream) apply(in *Input, b byte, now time.Time) {
	switch b {
	case ' ':
		s.held[JoyCenter] = now
	case 'z', 'Z':
		s.held[SW1] = now
	case 'x', 'X':
		s.held[SW2] = now
	case '[':
		in.Turret--
	case ']':
		in.Turret++
	case '-':
		in.Speed--
	case '=', '+':
		in.Speed++
	}
}
