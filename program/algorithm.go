package main

import (
	"sort"
	"time"

	"github.com/keilerkonzept/topk/heap"
	"github.com/keilerkonzept/topk/sliding"
)

// lineRanker counts which status lines the feed showed over the last
// windowSize rotations and keeps a ranked view of the most frequent ones.
type lineRanker struct {
	k           int
	fullRefresh time.Duration
	partialSize int

	sketch *sliding.Sketch

	lastFullRefresh time.Time
	items           []heap.Item
}

func newLineRanker(k, windowSize int, fullRefresh time.Duration, partialSize int) *lineRanker {
	if k < 1 {
		k = 1
	}
	if windowSize < 1 {
		windowSize = 1
	}
	if fullRefresh < 0 {
		fullRefresh = 2 * time.Second
	}
	if partialSize < 0 {
		partialSize = 0
	}
	return &lineRanker{
		k:           k,
		fullRefresh: fullRefresh,
		partialSize: partialSize,
		sketch: sliding.New(k, windowSize,
			sliding.WithWidth(256),
			sliding.WithDepth(3),
			sliding.WithDecay(0.9),
		),
	}
}

// observe advances the window by one rotation and counts line in it.
func (r *lineRanker) observe(line string) {
	r.sketch.Ticks(1)
	r.sketch.Incr(line)
}

// refresh updates the ranked view. A full refresh re-reads the sketch's
// top-K; in between only the counts of the first items are re-read and
// re-sorted.
func (r *lineRanker) refresh(now time.Time) (items []heap.Item, didFull bool) {
	if now.IsZero() {
		now = time.Now()
	}

	needFull := len(r.items) == 0 || r.lastFullRefresh.IsZero()
	if r.fullRefresh == 0 {
		needFull = true
	} else if now.Sub(r.lastFullRefresh) >= r.fullRefresh {
		needFull = true
	}
	if needFull {
		r.items = cloneItems(r.sketch.SortedSlice())
		r.updateCounts(len(r.items))
		r.items = dropEmpty(r.items)
		sortItems(r.items)
		if len(r.items) > r.k {
			r.items = r.items[:r.k]
		}
		r.lastFullRefresh = now
		return cloneItems(r.items), true
	}

	limit := len(r.items)
	if r.partialSize > 0 && r.partialSize < limit {
		limit = r.partialSize
	}
	r.updateCounts(limit)
	sortItems(r.items[:limit])
	return cloneItems(r.items), false
}

func (r *lineRanker) count(line string) uint32 {
	return r.sketch.Count(line)
}

func (r *lineRanker) updateCounts(limit int) {
	for i := 0; i < limit; i++ {
		r.items[i].Count = r.sketch.Count(r.items[i].Item)
	}
}

func sortItems(items []heap.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		li := items[i]
		lj := items[j]
		if li.Count != lj.Count {
			return li.Count > lj.Count
		}
		return li.Item < lj.Item
	})
}

func dropEmpty(in []heap.Item) []heap.Item {
	out := in[:0]
	for _, it := range in {
		if it.Count > 0 {
			out = append(out, it)
		}
	}
	return out
}

func cloneItems(in []heap.Item) []heap.Item {
	out := make([]heap.Item, len(in))
	copy(out, in)
	return out
}
