package fuzzy

import "testing"

var labels = []string{
	"Base prompt",
	"SYSTEM.md / APPEND_SYSTEM.md",
	"AGENTS.md files",
	"Skills (2)",
	"visual-explainer",
	"Metadata (date/time, cwd)",
}

func TestFind_EmptyQueryKeepsOrder(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		got := Find(q, labels)
		if len(got) != len(labels) {
			t.Fatalf("query %q: %d matches", q, len(got))
		}
		for i, m := range got {
			if m.Index != i {
				t.Fatalf("query %q: order changed at %d", q, i)
			}
		}
	}
}

func TestFind_NoMatchDropsEverything(t *testing.T) {
	if got := Find("zzzz", labels); len(got) != 0 {
		t.Fatalf("got %d matches", len(got))
	}
}

func TestFind_SubstringRanksFirst(t *testing.T) {
	got := Find("skills", labels)
	if len(got) == 0 {
		t.Fatal("no matches")
	}
	if labels[got[0].Index] != "Skills (2)" {
		t.Fatalf("first = %q", labels[got[0].Index])
	}
}

func TestFind_SubsequenceMatch(t *testing.T) {
	got := Find("vex", labels)
	if len(got) == 0 {
		t.Fatal("no matches")
	}
	if labels[got[0].Index] != "visual-explainer" {
		t.Fatalf("first = %q", labels[got[0].Index])
	}
}

func TestScore_SubstringBeatsSubsequence(t *testing.T) {
	sub := Score("Base prompt", "base")
	seq := Score("b-a-s-e separated", "base")
	if seq <= 0 {
		t.Fatal("subsequence should match")
	}
	if sub <= seq {
		t.Fatalf("substring %d should beat subsequence %d", sub, seq)
	}
}

func TestScore_ConsecutiveRunBeatsScattered(t *testing.T) {
	// Same four query characters, in two runs of two versus four
	// isolated characters. Neither text contains "agnt" outright and
	// neither uses separator characters that earn extra credit.
	tight := Score("agXnt", "agnt")
	loose := Score("aXgXnXt", "agnt")
	if tight <= loose {
		t.Fatalf("tight %d should beat loose %d", tight, loose)
	}
}

func TestScore_LongSubsequenceStaysBelowSubstring(t *testing.T) {
	// A long query matched in two big adjacent runs accumulates a lot
	// of bonus; it must still stay strictly under any substring score.
	q := "abcdefghijklmnop"
	seq := Score("abcdefghXijklmnop", q)
	sub := Score(q, q)
	if seq <= 0 {
		t.Fatal("subsequence should match")
	}
	if seq >= substringBaseline {
		t.Fatalf("subsequence %d not confined below baseline %d", seq, substringBaseline)
	}
	if sub <= seq {
		t.Fatalf("substring %d should beat subsequence %d", sub, seq)
	}
}

func TestScore_LongerCoverageScoresHigherAmongSubstrings(t *testing.T) {
	short := Score("a very long label with base inside", "base")
	full := Score("base", "base")
	if full <= short {
		t.Fatalf("full coverage %d should beat partial %d", full, short)
	}
}

func TestScore_NoMatchIsZero(t *testing.T) {
	if s := Score("Base prompt", "xyz"); s != 0 {
		t.Fatalf("score = %d", s)
	}
	if s := Score("abc", "cba"); s != 0 {
		t.Fatalf("out-of-order should be 0, got %d", s)
	}
}
