package feed

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeedEvictsOldestFirst(t *testing.T) {
	f := New(DefaultMaxLines)
	for i := 1; i <= 6; i++ {
		f.Push(fmt.Sprintf("line %d", i))
		require.LessOrEqual(t, f.Len(), DefaultMaxLines)
	}
	lines := f.Lines()
	require.Len(t, lines, 5)
	require.NotContains(t, lines, "line 1")
	require.Equal(t, "line 2", lines[0])
	require.Equal(t, "line 6", lines[len(lines)-1])
}

func TestFeedNeverExceedsMax(t *testing.T) {
	f := New(3)
	for i := 0; i < 100; i++ {
		f.Push("x")
		require.LessOrEqual(t, f.Len(), 3)
	}
	require.Equal(t, 1, New(0).Max())
}

func TestFeedLinesIsACopy(t *testing.T) {
	f := New(2)
	f.Push("a")
	lines := f.Lines()
	lines[0] = "mutated"
	require.Equal(t, []string{"a"}, f.Lines())
}

func TestRotateIsDeterministicWithSeed(t *testing.T) {
	run := func() []string {
		f := New(DefaultMaxLines)
		r := NewRotator(DefaultLines, f, rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			_, ok := r.Rotate()
			require.True(t, ok)
		}
		return f.Lines()
	}
	require.Equal(t, run(), run())
}

func TestRotatePrefixesMarker(t *testing.T) {
	f := New(DefaultMaxLines)
	r := NewRotator(DefaultLines, f, rand.New(rand.NewSource(1)))
	line, ok := r.Rotate()
	require.True(t, ok)
	require.Contains(t, DefaultLines, line)
	require.Equal(t, []string{Marker + line}, f.Lines())
	require.True(t, strings.HasPrefix(f.Lines()[0], "> "))
}

func TestRotateCoversCandidates(t *testing.T) {
	f := New(DefaultMaxLines)
	r := NewRotator(DefaultLines, f, rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		line, _ := r.Rotate()
		seen[line] = true
	}
	require.Len(t, seen, len(DefaultLines))
}

func TestRotateEmptyCandidatesIsNoop(t *testing.T) {
	f := New(DefaultMaxLines)
	r := NewRotator(nil, f, rand.New(rand.NewSource(1)))
	line, ok := r.Rotate()
	require.False(t, ok)
	require.Empty(t, line)
	require.Zero(t, f.Len())
}
