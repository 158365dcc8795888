package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/basket/promptscope/internal/budget"
	"github.com/basket/promptscope/internal/promptparse"
)

const reportBarWidth = 60

// printReport writes a one-shot plain-text breakdown: the same items
// the overlay shows, without the interactive loop.
func printReport(w io.Writer, parsed promptparse.Result, window int) {
	items := budget.Project(parsed)

	fmt.Fprintf(w, "Prompt budget: %d tokens, %d chars\n", parsed.TotalTokens, parsed.TotalChars)
	if window > 0 {
		used := float64(parsed.TotalTokens) / float64(window) * 100
		fmt.Fprintf(w, "%.1f%% of %d-token context window\n", used, window)
	}

	if len(items) > 0 {
		var bar strings.Builder
		weighted := make([]budget.Weighted, len(items))
		for i, it := range items {
			weighted[i] = budget.Weighted{Label: it.Label, Weight: it.Tokens}
		}
		for i, seg := range budget.Allocate(weighted, reportBarWidth) {
			ch := "█"
			if i%2 == 1 {
				ch = "▓"
			}
			bar.WriteString(strings.Repeat(ch, seg.Width))
		}
		fmt.Fprintln(w, bar.String())
	}
	fmt.Fprintln(w)

	for _, it := range items {
		fmt.Fprintf(w, "%-36s %8d tok %5.1f%%\n", it.Label, it.Tokens, it.Pct)
		for _, c := range it.Children {
			fmt.Fprintf(w, "  %-34s %8d tok %5.1f%%\n", c.Label, c.Tokens, c.Pct)
		}
	}
}
