package budget

import "testing"

func widths(segs []Segment) []int {
	out := make([]int, len(segs))
	for i, s := range segs {
		out[i] = s.Width
	}
	return out
}

func sumWidths(segs []Segment) int {
	total := 0
	for _, s := range segs {
		total += s.Width
	}
	return total
}

func TestAllocate_Empty(t *testing.T) {
	if got := Allocate(nil, 40); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestAllocate_EvenSplit(t *testing.T) {
	got := Allocate([]Weighted{{"a", 50}, {"b", 50}}, 40)
	if got[0].Width != 20 || got[1].Width != 20 {
		t.Fatalf("got %v", widths(got))
	}
}

func TestAllocate_TinyItemKeepsOneCell(t *testing.T) {
	got := Allocate([]Weighted{{"big", 9900}, {"tiny", 1}}, 40)
	if got[1].Width < 1 {
		t.Fatalf("tiny width = %d", got[1].Width)
	}
	if sumWidths(got) != 40 {
		t.Fatalf("sum = %d", sumWidths(got))
	}
}

func TestAllocate_MinimumStealsFromLargest(t *testing.T) {
	got := Allocate([]Weighted{{"big", 10000}, {"a", 1}, {"b", 1}}, 10)
	if got[0].Width != 8 {
		t.Fatalf("big width = %d, want 8", got[0].Width)
	}
	if got[1].Width != 1 || got[2].Width != 1 {
		t.Fatalf("got %v", widths(got))
	}
}

func TestAllocate_AllZeroWeights(t *testing.T) {
	got := Allocate([]Weighted{{"a", 0}, {"b", 0}, {"c", 0}}, 10)
	// 10 = 4 + 3 + 3: remainder goes to the first items in input order.
	if got[0].Width != 4 || got[1].Width != 3 || got[2].Width != 3 {
		t.Fatalf("got %v", widths(got))
	}
}

func TestAllocate_SumProperty(t *testing.T) {
	cases := [][]Weighted{
		{{"a", 1}, {"b", 2}, {"c", 3}},
		{{"a", 7}, {"b", 7}, {"c", 7}, {"d", 7}},
		{{"a", 1}, {"b", 9999}},
		{{"a", 0}, {"b", 5}},
		{{"a", 13}, {"b", 29}, {"c", 5}, {"d", 1}, {"e", 1}},
	}
	for _, items := range cases {
		for w := len(items); w <= 80; w++ {
			got := Allocate(items, w)
			if sumWidths(got) != w {
				t.Fatalf("items %v width %d: sum = %d", items, w, sumWidths(got))
			}
			for _, s := range got {
				if s.Width < 1 {
					t.Fatalf("items %v width %d: segment %q below 1", items, w, s.Label)
				}
			}
		}
	}
}

func TestAllocate_ZeroWidth(t *testing.T) {
	got := Allocate([]Weighted{{"a", 5}}, 0)
	if len(got) != 1 || got[0].Width != 0 {
		t.Fatalf("got %v", widths(got))
	}
}
