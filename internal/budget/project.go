package budget

import (
	"sort"

	"github.com/basket/promptscope/internal/promptparse"
)

// Item is one display row derived from a parsed prompt. Pct is always a
// percentage of the grand total, for children too, so rows stay
// comparable across drill-down levels.
type Item struct {
	Label     string
	Tokens    int
	Chars     int
	Pct       float64
	Drillable bool
	Children  []Item
}

// Project converts parsed sections into display items. The top-level
// list and each children list are independently sorted by descending
// token cost; ties keep document order.
func Project(parsed promptparse.Result) []Item {
	items := make([]Item, 0, len(parsed.Sections))
	for _, sec := range parsed.Sections {
		item := Item{
			Label:     sec.Label,
			Tokens:    sec.Tokens,
			Chars:     sec.Chars,
			Pct:       pct(sec.Tokens, parsed.TotalTokens),
			Drillable: len(sec.Children) > 0,
		}
		for _, c := range sec.Children {
			item.Children = append(item.Children, Item{
				Label:  c.Label,
				Tokens: c.Tokens,
				Chars:  c.Chars,
				Pct:    pct(c.Tokens, parsed.TotalTokens),
			})
		}
		sortByTokens(item.Children)
		items = append(items, item)
	}
	sortByTokens(items)
	return items
}

func sortByTokens(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Tokens > items[j].Tokens })
}

func pct(tokens, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(tokens) / float64(total) * 100
}
