// Package feed implements the rotating status log: a bounded FIFO of lines
// and a rotator that appends a random status line to it.
package feed

// DefaultMaxLines is how many lines the feed keeps visible.
const DefaultMaxLines = 5

// Feed is an ordered list of lines capped at a maximum length. The oldest
// line is evicted first.
type Feed struct {
	max   int
	lines []string
}

// New builds a feed holding at most max lines. max is raised to 1.
func New(max int) *Feed {
	if max < 1 {
		max = 1
	}
	return &Feed{max: max, lines: make([]string, 0, max)}
}

// Push appends a line, evicting from the front until the cap holds.
func (f *Feed) Push(line string) {
	if len(f.lines) >= f.max {
		n := copy(f.lines, f.lines[len(f.lines)-f.max+1:])
		f.lines = f.lines[:n]
	}
	f.lines = append(f.lines, line)
}

// Lines returns a copy of the visible lines, oldest first.
func (f *Feed) Lines() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

func (f *Feed) Len() int { return len(f.lines) }
func (f *Feed) Max() int { return f.max }
