// Package budget turns parsed prompt sections into display items and
// lays out the proportional bar chart under a fixed character budget.
package budget

import (
	"math"
	"sort"
)

// Weighted is one bar category before layout.
type Weighted struct {
	Label  string
	Weight int
}

// Segment is one laid-out bar span.
type Segment struct {
	Label string
	Width int
}

// Allocate distributes totalWidth cells across items proportionally to
// weight. The resulting widths always sum to totalWidth, and every
// segment keeps at least one cell so tiny categories stay visible.
// An empty item list yields nil; a non-positive width yields zero-width
// segments.
func Allocate(items []Weighted, totalWidth int) []Segment {
	if len(items) == 0 {
		return nil
	}
	segs := make([]Segment, len(items))
	for i, it := range items {
		segs[i] = Segment{Label: it.Label}
	}
	if totalWidth <= 0 {
		return segs
	}

	sum := 0
	for _, it := range items {
		if it.Weight > 0 {
			sum += it.Weight
		}
	}

	// All-zero weights: split evenly, remainder to the first items.
	if sum == 0 {
		base := totalWidth / len(items)
		rem := totalWidth % len(items)
		for i := range segs {
			segs[i].Width = base
			if i < rem {
				segs[i].Width++
			}
		}
		return segs
	}

	type remainder struct {
		idx  int
		frac float64
	}
	rems := make([]remainder, len(items))
	used := 0
	for i, it := range items {
		w := it.Weight
		if w < 0 {
			w = 0
		}
		ideal := float64(w) / float64(sum) * float64(totalWidth)
		floor := int(math.Floor(ideal))
		rems[i] = remainder{idx: i, frac: ideal - float64(floor)}
		if floor < 1 {
			floor = 1
		}
		segs[i].Width = floor
		used += floor
	}

	// Shortfall from flooring: hand out one cell at a time by largest
	// fractional remainder, wrapping around when short by more than the
	// item count.
	if used < totalWidth {
		sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
		i := 0
		for n := totalWidth - used; n > 0; n-- {
			segs[rems[i].idx].Width++
			i = (i + 1) % len(rems)
		}
		used = totalWidth
	}

	// Excess from the minimum-1 bump: take cells back from the current
	// largest segment. The max shifts as widths drop, so it is found
	// again on every step.
	for used > totalWidth {
		maxIdx := 0
		for i := range segs {
			if segs[i].Width > segs[maxIdx].Width {
				maxIdx = i
			}
		}
		if segs[maxIdx].Width <= 1 {
			break
		}
		segs[maxIdx].Width--
		used--
	}

	return segs
}
