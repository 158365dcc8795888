// Package tui binds the budget overlay to the terminal through
// Bubbletea: it decodes key messages into the overlay's event
// vocabulary, forwards terminal width, and swaps in a re-parsed prompt
// when the watched file changes.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/basket/promptscope/internal/overlay"
	"github.com/basket/promptscope/internal/promptparse"
)

// Analyzer re-parses prompt text when the watched file changes.
type Analyzer func(text string) promptparse.Result

// Options configures one Run.
type Options struct {
	// Width is the assumed terminal width until the first
	// WindowSizeMsg arrives.
	Width int

	// Reload delivers new prompt text; nil disables live reload.
	Reload <-chan string

	// Analyze turns reloaded text into a parse result. Required when
	// Reload is set.
	Analyze Analyzer
}

type promptChangedMsg struct{ text string }

type model struct {
	ov      *overlay.Overlay
	width   int
	analyze Analyzer
	reload  <-chan string
}

func waitForChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return promptChangedMsg{text: text}
	}
}

func (m model) Init() tea.Cmd {
	return waitForChange(m.reload)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ov.Invalidate()
	case promptChangedMsg:
		if m.analyze != nil {
			m.ov.Load(m.analyze(msg.text))
		}
		return m, waitForChange(m.reload)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if ev, ok := decodeKey(msg); ok {
			m.ov.Handle(ev)
		}
		if m.ov.Closed() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.ov.Closed() {
		return ""
	}
	return strings.Join(m.ov.Render(m.width), "\n") + "\n"
}

// decodeKey maps a Bubbletea key to the overlay's event vocabulary.
// Control sequences outside that vocabulary are dropped.
func decodeKey(msg tea.KeyMsg) (overlay.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return overlay.KeyEvent{Kind: overlay.KeyUp}, true
	case tea.KeyDown:
		return overlay.KeyEvent{Kind: overlay.KeyDown}, true
	case tea.KeyEnter:
		return overlay.KeyEvent{Kind: overlay.KeyEnter}, true
	case tea.KeyEsc:
		return overlay.KeyEvent{Kind: overlay.KeyEscape}, true
	case tea.KeyBackspace:
		return overlay.KeyEvent{Kind: overlay.KeyBackspace}, true
	case tea.KeySpace:
		return overlay.KeyEvent{Kind: overlay.KeyRune, Rune: ' '}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] >= ' ' {
			return overlay.KeyEvent{Kind: overlay.KeyRune, Rune: msg.Runes[0]}, true
		}
	}
	return overlay.KeyEvent{}, false
}

// Run drives the overlay until it closes or ctx is cancelled.
func Run(ctx context.Context, ov *overlay.Overlay, opts Options) error {
	defer bestEffortResetTTY()

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	m := model{ov: ov, width: width, analyze: opts.Analyze, reload: opts.Reload}
	p := tea.NewProgram(m)

	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	select {
	case <-ctx.Done():
		p.Quit()
		return ctx.Err()
	case err := <-done:
		return err
	}
}
