package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/basket/promptscope/internal/budget"
)

const minRenderWidth = 24

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	searchStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("215"))

	barPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("72")),
	}
)

// Render produces one full frame for the given terminal width. Frames
// are deterministic for a given state and width, so the last one is
// kept until a key event or Invalidate discards it.
func (o *Overlay) Render(width int) []string {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	if o.cacheValid && o.cacheWidth == width {
		return o.cacheLines
	}
	lines := o.renderFrame(width)
	o.cacheWidth, o.cacheLines, o.cacheValid = width, lines, true
	return lines
}

// Invalidate forces the next Render call to rebuild the frame.
func (o *Overlay) Invalidate() { o.cacheValid = false }

func (o *Overlay) renderFrame(width int) []string {
	vis := o.visible()
	var lines []string

	lines = append(lines, o.renderTitle(width))
	if o.opts.ContextWindow > 0 {
		used := 0.0
		if o.totalTokens > 0 {
			used = float64(o.totalTokens) / float64(o.opts.ContextWindow) * 100
		}
		lines = append(lines, headerStyle.Render(
			fmt.Sprintf("%.1f%% of %d-token context window", used, o.opts.ContextWindow)))
	}
	if bar := renderBar(vis, width); bar != "" {
		lines = append(lines, bar)
	}
	lines = append(lines, "")

	if o.searchActive {
		lines = append(lines, searchStyle.Render("/"+o.searchQuery+"▌"))
	}

	lines = append(lines, o.renderRows(vis, width)...)
	lines = append(lines, "", dimStyle.Render(o.hints()))
	return lines
}

func (o *Overlay) renderTitle(width int) string {
	title := "promptscope"
	if o.mode == ModeDrilldown && o.drill != nil {
		title = o.drill.Label
	}
	totals := fmt.Sprintf("%d tokens, %d chars", o.totalTokens, o.totalChars)
	line := titleStyle.Render(title) + "  " + headerStyle.Render(totals)
	return ansi.Truncate(line, width, "…")
}

// renderBar lays the visible items out as a proportional block bar,
// cycling the palette so adjacent segments stay distinguishable.
func renderBar(items []budget.Item, width int) string {
	if len(items) == 0 {
		return ""
	}
	weighted := make([]budget.Weighted, len(items))
	for i, it := range items {
		weighted[i] = budget.Weighted{Label: it.Label, Weight: it.Tokens}
	}
	var b strings.Builder
	for i, seg := range budget.Allocate(weighted, width) {
		style := barPalette[i%len(barPalette)]
		b.WriteString(style.Render(strings.Repeat("█", seg.Width)))
	}
	return b.String()
}

func (o *Overlay) renderRows(vis []budget.Item, width int) []string {
	if len(vis) == 0 {
		return []string{dimStyle.Render("  no matches")}
	}

	top := o.scroll
	if top > len(vis)-1 {
		top = len(vis) - 1
	}
	bottom := top + o.opts.WindowRows
	if bottom > len(vis) {
		bottom = len(vis)
	}

	rows := make([]string, 0, bottom-top)
	for i := top; i < bottom; i++ {
		rows = append(rows, o.renderRow(vis[i], i == o.selected, width))
	}
	if bottom < len(vis) {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("  … %d more", len(vis)-bottom)))
	}
	return rows
}

func (o *Overlay) renderRow(it budget.Item, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}
	name := it.Label
	if it.Drillable {
		name += " ▸"
	}

	right := fmt.Sprintf("%8d tok %5.1f%%", it.Tokens, it.Pct)
	avail := width - ansi.StringWidth(marker) - ansi.StringWidth(right) - 1
	if avail < 4 {
		avail = 4
	}
	name = ansi.Truncate(name, avail, "…")
	pad := avail - ansi.StringWidth(name)
	if pad < 0 {
		pad = 0
	}

	line := marker + name + strings.Repeat(" ", pad+1) + right
	if selected {
		return selStyle.Render(line)
	}
	return line
}

func (o *Overlay) hints() string {
	if o.searchActive {
		return "type to filter  [↑/↓] move  [backspace] delete  [esc] cancel search"
	}
	if o.mode == ModeDrilldown {
		return "[↑/↓] move  [/] search  [esc] back"
	}
	return "[↑/↓] move  [enter] open  [/] search  [esc] close"
}
