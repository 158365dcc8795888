package modelinfo

import "testing"

func TestContextWindow(t *testing.T) {
	if got := ContextWindow("claude-sonnet-4-5"); got != 200_000 {
		t.Fatalf("got %d", got)
	}
	if got := ContextWindow("gpt-4o"); got != 128_000 {
		t.Fatalf("got %d", got)
	}
}

func TestContextWindow_UnknownModel(t *testing.T) {
	if got := ContextWindow("some-future-model"); got != 0 {
		t.Fatalf("unknown model should be 0, got %d", got)
	}
}
