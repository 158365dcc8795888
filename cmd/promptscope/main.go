package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/basket/promptscope/internal/config"
	"github.com/basket/promptscope/internal/modelinfo"
	"github.com/basket/promptscope/internal/overlay"
	"github.com/basket/promptscope/internal/promptparse"
	"github.com/basket/promptscope/internal/tokenizer"
	"github.com/basket/promptscope/internal/tui"
)

// Version is set via ldflags at build time: -ldflags "-X main.Version=..."
var Version = "v0.1-dev"

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] [prompt-file]

Analyzes an assembled system prompt and shows an interactive
token-budget breakdown: which contributors (base instructions,
SYSTEM.md / APPEND_SYSTEM.md, AGENTS.md files, skills, metadata) cost
how many tokens. Reads the prompt from the file argument, or from stdin
when no file is given.

KEYS:
  Up/Down    navigate          Enter      drill into a section
  /          fuzzy search      Esc        back / close

FLAGS:
`, os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
ENVIRONMENT VARIABLES:
  PROMPTSCOPE_HOME    Data directory (default: ~/.promptscope)
  PROMPTSCOPE_MODEL   Model for the context-window lookup

EXAMPLES:
  Interactive overlay:   %s prompt.txt
  Piped input:           some-agent --dump-prompt | %s
  Plain report:          %s -report prompt.txt
`, os.Args[0], os.Args[0], os.Args[0])
}

func main() {
	modelFlag := flag.String("model", "", "model for the context-window lookup (overrides config)")
	report := flag.Bool("report", false, "print a one-shot plain report instead of the interactive overlay")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *modelFlag != "" {
		cfg.Model = *modelFlag
	}

	// The overlay needs the terminal; piped stdout gets the plain
	// report instead.
	interactive := isatty.IsTerminal(os.Stdout.Fd()) && !*report

	logger, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		fatal(err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	promptPath, prompt, err := readPrompt(flag.Args())
	if err != nil {
		fatal(err)
	}

	counter, err := tokenizer.New(cfg.Encoding)
	if err != nil {
		// A nil Counter counts with the heuristic estimator.
		slog.Warn("tiktoken unavailable, falling back to heuristic estimates", "error", err)
		counter = nil
	}
	analyze := func(text string) promptparse.Result {
		return promptparse.Parse(text, counter.Count)
	}

	parsed := analyze(prompt)
	window := cfg.ContextWindow
	if window == 0 {
		window = modelinfo.ContextWindow(cfg.Model)
	}
	slog.Info("prompt analyzed",
		"chars", parsed.TotalChars,
		"tokens", parsed.TotalTokens,
		"sections", len(parsed.Sections),
		"skills", len(parsed.Skills),
	)

	if !interactive {
		printReport(os.Stdout, parsed, window)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ov := overlay.New(parsed, overlay.Options{
		ContextWindow: window,
		WindowRows:    cfg.WindowRows,
	})

	var reload <-chan string
	if promptPath != "" {
		reload = watchPrompt(ctx, promptPath)
	}

	if err := tui.Run(ctx, ov, tui.Options{Reload: reload, Analyze: analyze}); err != nil && ctx.Err() == nil {
		fatal(err)
	}
}

// readPrompt returns the prompt text and, when it came from a file, the
// path to watch for changes.
func readPrompt(args []string) (path, text string, err error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read prompt file: %w", err)
		}
		return args[0], string(data), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return "", "", fmt.Errorf("no prompt file given and stdin is a terminal (see %s -h)", os.Args[0])
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return "", string(data), nil
}

// watchPrompt re-reads the prompt file on every change and forwards the
// new text to the TUI. Best-effort: when watching fails the overlay
// simply shows the initial parse.
func watchPrompt(ctx context.Context, path string) <-chan string {
	w := config.NewWatcher([]string{path}, slog.Default())
	if err := w.Start(ctx); err != nil {
		slog.Warn("prompt watch unavailable", "error", err)
		return nil
	}
	out := make(chan string, 1)
	go func() {
		defer close(out)
		for ev := range w.Events() {
			data, err := os.ReadFile(ev.Path)
			if err != nil {
				slog.Warn("re-read prompt", "path", ev.Path, "error", err)
				continue
			}
			select {
			case out <- string(data):
			default:
			}
		}
	}()
	return out
}

// newLogger logs to a file in interactive mode so the TUI owns the
// terminal, and to stderr otherwise.
func newLogger(cfg config.Config, interactive bool) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.LogLevel)
	if !interactive {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		return slog.New(h), func() {}, nil
	}
	logPath := filepath.Join(cfg.HomeDir, "promptscope.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func() { _ = f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "promptscope:", err)
	os.Exit(1)
}
