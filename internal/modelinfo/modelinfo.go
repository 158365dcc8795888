// Package modelinfo maps model names to context-window capacity.
package modelinfo

// Known context windows (tokens) as of Feb 2026. Add new models as
// needed.
var knownWindows = map[string]int{
	// Anthropic
	"claude-3-7-sonnet": 200_000,
	"claude-sonnet-4-5": 200_000,
	"claude-opus-4-1":   200_000,
	// OpenAI
	"gpt-4o":      128_000,
	"gpt-4o-mini": 128_000,
	// Gemini
	"gemini-1.5-pro":       2_097_152,
	"gemini-2.0-flash-exp": 1_048_576,
	"gemini-2.5-flash":     1_048_576,
}

// ContextWindow returns the token capacity for the given model, or 0
// for unknown models so callers can omit capacity-relative displays.
func ContextWindow(model string) int {
	return knownWindows[model]
}
