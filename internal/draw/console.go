package draw

import "sync"

// Console keeps the newest complete lines written to the debug channel so a
// display can show them to the player. Carriage returns are dropped and an
// unterminated line is held until its newline arrives.
type Console struct {
	mu      sync.Mutex
	lines   []string
	partial []byte
	limit   int
	version uint64
}

// NewConsole returns a console remembering up to size lines.
func NewConsole(size int) *Console {
	return &Console{limit: max(size, 1)}
}

// Write implements io.Writer. It never fails.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range p {
		switch b {
		case '\r':
		case '\n':
			c.push(string(c.partial))
			c.partial = c.partial[:0]
		default:
			c.partial = append(c.partial, b)
		}
	}
	return len(p), nil
}

func (c *Console) push(line string) {
	if len(c.lines) == c.limit {
		copy(c.lines, c.lines[1:])
		c.lines = c.lines[:c.limit-1]
	}
	c.lines = append(c.lines, line)
	c.version++
}

// Tail returns up to n of the newest lines, oldest first, and a version that
// changes whenever a line is added.
func (c *Console) Tail(n int) ([]string, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.lines) {
		n = len(c.lines)
	}
	return append([]string(nil), c.lines[len(c.lines)-n:]...), c.version
}
