// Package overlay implements the interactive token-budget overlay: a
// navigation/search state machine fed one decoded key event at a time,
// and a stateless frame renderer over the current state. The overlay
// never touches the terminal itself; the host feeds it events and
// displays the lines it renders.
package overlay

import (
	"strings"
	"unicode/utf8"

	"github.com/basket/promptscope/internal/budget"
	"github.com/basket/promptscope/internal/fuzzy"
	"github.com/basket/promptscope/internal/promptparse"
)

// Mode is the overlay's top-level navigation state. Search is an
// orthogonal flag layered on either mode, not a mode of its own.
type Mode int

const (
	ModeSections Mode = iota
	ModeDrilldown
)

// KeyKind classifies one decoded input event.
type KeyKind int

const (
	KeyUp KeyKind = iota
	KeyDown
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyRune
)

// KeyEvent is one decoded key. Rune is set only for KeyRune.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

const defaultWindowRows = 8

// Options configures an overlay session.
type Options struct {
	// ContextWindow is the model's token capacity. Zero omits the
	// "% of window" header line.
	ContextWindow int

	// WindowRows is the visible list height. Zero uses the default.
	WindowRows int
}

// Overlay owns all mutable UI state for one session. It is
// single-threaded by construction: the host delivers one event at a
// time and renders between events.
type Overlay struct {
	items       []budget.Item
	totalTokens int
	totalChars  int
	opts        Options

	mode         Mode
	drill        *budget.Item
	selected     int
	scroll       int
	searchActive bool
	searchQuery  string
	closed       bool

	// Last-rendered frame, keyed by width. Purely a memoization: any
	// state mutation invalidates it.
	cacheWidth int
	cacheLines []string
	cacheValid bool
}

// New builds an overlay over an analyzed prompt.
func New(parsed promptparse.Result, opts Options) *Overlay {
	o := &Overlay{opts: opts}
	if o.opts.WindowRows <= 0 {
		o.opts.WindowRows = defaultWindowRows
	}
	o.Load(parsed)
	return o
}

// Load replaces the analyzed prompt and resets navigation. Called at
// construction and when the watched prompt file changes.
func (o *Overlay) Load(parsed promptparse.Result) {
	o.items = budget.Project(parsed)
	o.totalTokens = parsed.TotalTokens
	o.totalChars = parsed.TotalChars
	o.mode = ModeSections
	o.drill = nil
	o.searchActive = false
	o.searchQuery = ""
	o.resetCursor()
	o.Invalidate()
}

// Closed reports whether the session has ended. Events after close are
// ignored.
func (o *Overlay) Closed() bool { return o.closed }

// Handle applies one key event. Events never fail: anything that does
// not apply in the current state is silently ignored.
func (o *Overlay) Handle(ev KeyEvent) {
	if o.closed {
		return
	}
	defer o.Invalidate()

	switch ev.Kind {
	case KeyUp:
		o.move(-1)
	case KeyDown:
		o.move(1)
	case KeyEnter:
		o.enter()
	case KeyEscape:
		o.escape()
	case KeyBackspace:
		if o.searchActive && o.searchQuery != "" {
			_, size := utf8.DecodeLastRuneInString(o.searchQuery)
			o.searchQuery = o.searchQuery[:len(o.searchQuery)-size]
			o.resetCursor()
		}
	case KeyRune:
		o.typeRune(ev.Rune)
	}
}

// visible is the active item list: drill-down children or top-level
// sections, reduced by the search filter when one is live.
func (o *Overlay) visible() []budget.Item {
	base := o.items
	if o.mode == ModeDrilldown && o.drill != nil {
		base = o.drill.Children
	}
	if !o.searchActive || strings.TrimSpace(o.searchQuery) == "" {
		return base
	}
	labels := make([]string, len(base))
	for i, it := range base {
		labels[i] = it.Label
	}
	matches := fuzzy.Find(o.searchQuery, labels)
	out := make([]budget.Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, base[m.Index])
	}
	return out
}

func (o *Overlay) resetCursor() {
	o.selected, o.scroll = 0, 0
}

// move wraps circularly and keeps the selection inside the visible
// window: moving above the window pins it to the top, moving below
// advances the window so the selection becomes the bottom row.
func (o *Overlay) move(delta int) {
	n := len(o.visible())
	if n == 0 {
		return
	}
	o.selected = (o.selected + delta + n) % n
	if o.selected < o.scroll {
		o.scroll = o.selected
	} else if o.selected >= o.scroll+o.opts.WindowRows {
		o.scroll = o.selected - o.opts.WindowRows + 1
	}
}

func (o *Overlay) enter() {
	if o.mode != ModeSections {
		return
	}
	vis := o.visible()
	if o.selected >= len(vis) {
		return
	}
	it := vis[o.selected]
	if !it.Drillable {
		return
	}
	// The visible slice is rebuilt on every event, so drill into a copy.
	o.drill = &it
	o.mode = ModeDrilldown
	o.searchActive = false
	o.searchQuery = ""
	o.resetCursor()
}

// escape peels one layer: live search first, then drill-down, then the
// overlay itself.
func (o *Overlay) escape() {
	switch {
	case o.searchActive:
		o.searchActive = false
		o.searchQuery = ""
		o.resetCursor()
	case o.mode == ModeDrilldown:
		o.mode = ModeSections
		o.drill = nil
		o.resetCursor()
	default:
		o.closed = true
	}
}

func (o *Overlay) typeRune(r rune) {
	if r < ' ' {
		return
	}
	if !o.searchActive {
		if r == '/' {
			o.searchActive = true
			o.searchQuery = ""
			o.resetCursor()
		}
		return
	}
	o.searchQuery += string(r)
	o.resetCursor()
}
