// Package tokenizer provides the token counter used for every span
// measurement. Real BPE counts come from tiktoken; when the encoding
// cannot be initialized a word/char heuristic keeps the tool usable
// offline. Whichever counter is chosen, the same one is used for all
// spans of a parse so relative proportions stay coherent.
package tokenizer

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is a good approximation across providers.
const DefaultEncoding = "cl100k_base"

// Counter wraps a tiktoken encoding.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New creates a Counter for the named encoding (DefaultEncoding when
// empty).
func New(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: get encoding %s: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the token count for s. A nil Counter falls back to the
// heuristic estimate, so callers can treat construction failure as a
// degraded mode rather than a fatal one.
func (c *Counter) Count(s string) int {
	if c == nil || c.enc == nil {
		return Estimate(s)
	}
	return len(c.enc.Encode(s, nil, nil))
}

// Estimate returns a word-based token estimate.
// Splits on whitespace, multiplies by 1.33 (avg tokens/word for English).
// Uses max(wordEstimate, len/4) as floor for code/non-English.
func Estimate(content string) int {
	if content == "" {
		return 0
	}
	words := len(strings.Fields(content))
	wordEstimate := int(float64(words) * 1.33)
	charEstimate := len(content) / 4
	if wordEstimate > charEstimate {
		return wordEstimate
	}
	return charEstimate
}
