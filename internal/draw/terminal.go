package draw

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqEraseLine  = "\033[2K"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqInverse    = "\033[7m"
	seqReset      = "\033[0m"
)

// maxChunkSize keeps each write under a typical MTU so SSH channels stay
// responsive while a full repaint is in flight.
const maxChunkSize = 1400

// frameWriter collects one frame of terminal output and sends it in
// MTU-sized writes. Cursor positions are canvas-relative and 1-based; the
// centering offset is added here.
type frameWriter struct {
	w      io.Writer
	buf    bytes.Buffer
	num    [20]byte
	offCol int
	offRow int
}

func newFrameWriter(w io.Writer) *frameWriter {
	return &frameWriter{w: w}
}

func (fw *frameWriter) setOffset(col, row int) {
	fw.offCol = col
	fw.offRow = row
}

// Write implements io.Writer so a Canvas can render into the frame.
func (fw *frameWriter) Write(p []byte) (int, error) {
	return fw.buf.Write(p)
}

// moveTo appends a cursor position sequence.
func (fw *frameWriter) moveTo(col, row int) {
	fw.buf.WriteString("\033[")
	fw.buf.Write(strconv.AppendInt(fw.num[:0], int64(row+fw.offRow), 10))
	fw.buf.WriteByte(';')
	fw.buf.Write(strconv.AppendInt(fw.num[:0], int64(col+fw.offCol), 10))
	fw.buf.WriteByte('H')
}

// text writes s starting at (col, row), in reverse video when inverse is set.
func (fw *frameWriter) text(col, row int, s string, inverse bool) {
	fw.moveTo(col, row)
	if inverse {
		fw.buf.WriteString(seqInverse)
		fw.buf.WriteString(s)
		fw.buf.WriteString(seqReset)
		return
	}
	fw.buf.WriteString(s)
}

// line overwrites terminal row row, ignoring the canvas offset.
func (fw *frameWriter) line(row int, s string) {
	fw.buf.WriteString("\033[")
	fw.buf.Write(strconv.AppendInt(fw.num[:0], int64(row), 10))
	fw.buf.WriteString(";1H" + seqEraseLine)
	fw.buf.WriteString(s)
}

// clear queues a full screen clear.
func (fw *frameWriter) clear() {
	fw.buf.WriteString(seqClear)
}

// pending returns the number of bytes queued for the next flush.
func (fw *frameWriter) pending() int {
	return fw.buf.Len()
}

// flush sends the queued frame and empties the buffer.
func (fw *frameWriter) flush() error {
	defer fw.buf.Reset()
	for data := fw.buf.Bytes(); len(data) > 0; {
		n := min(len(data), maxChunkSize)
		if _, err := fw.w.Write(data[:n]); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedTermSize returns a TermSizeFunc that always reports width x height.
func FixedTermSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}
