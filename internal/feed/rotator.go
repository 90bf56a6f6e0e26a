package feed

import "math/rand"

// Marker prefixes every line the rotator emits.
const Marker = "> "

// DefaultLines are the cosmetic status lines shown by the widget.
var DefaultLines = []string{
	"Fetching GitHub activity...",
	"Stats synchronized: +15XP",
	"Mood: [STABLE]",
	"Power level: 9001",
	"Cleaning cache...",
	"Dragon protocol active",
	"Volkan's pet is breathing...",
	"Scanning dependencies...",
	"All systems nominal.",
	"Heartbeat: 72 BPM",
	"QRS: 98ms",
	"ST segment: normal",
}

// Rotator appends a uniformly chosen candidate line to a Feed on every call
// to Rotate.
type Rotator struct {
	lines []string
	feed  *Feed
	rnd   *rand.Rand
}

// NewRotator builds a rotator over a copy of lines. rnd is the source of
// randomness; pass a seeded one for reproducible output.
func NewRotator(lines []string, feed *Feed, rnd *rand.Rand) *Rotator {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Rotator{lines: cp, feed: feed, rnd: rnd}
}

// Rotate picks the next line and pushes it, marker included. The picked
// candidate is returned without the marker. With no candidates it does
// nothing and returns false.
func (r *Rotator) Rotate() (string, bool) {
	if len(r.lines) == 0 || r.feed == nil {
		return "", false
	}
	line := r.lines[r.rnd.Intn(len(r.lines))]
	r.feed.Push(Marker + line)
	return line, true
}

func (r *Rotator) Feed() *Feed { return r.feed }
