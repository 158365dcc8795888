// Package promptparse recovers the structural sections of an assembled
// system prompt. The host concatenates the base instructions, appended
// SYSTEM.md / APPEND_SYSTEM.md guidance, a "# Project Context" block of
// AGENTS.md files, a skills listing, and a trailing metadata footer into
// one string; this package splits that string back apart using the
// literal anchors the host always emits. There is no grammar to parse,
// only substring positions to compare.
package promptparse

import (
	"fmt"
	"regexp"
	"strings"
)

// Fixed section label vocabulary. The skills label carries the extracted
// entry count and is produced by skillsLabel.
const (
	LabelBase     = "Base prompt"
	LabelSystem   = "SYSTEM.md / APPEND_SYSTEM.md"
	LabelAgents   = "AGENTS.md files"
	LabelMetadata = "Metadata (date/time, cwd)"
)

// Anchors emitted by the host. Absence of an anchor means the
// corresponding section simply does not appear.
const (
	projectContextAnchor = "\n\n# Project Context"
	skillsPreambleAnchor = "\n\nYou have access to the following skills:"
	skillsOpenTag        = "<available_skills>"
	skillsCloseTag       = "</available_skills>"
	metadataLinePrefix   = "Current date and time:"
)

var (
	// The base prompt ends after the last "read/consult the pi docs"
	// instruction line when one is present.
	piDocsLineRe = regexp.MustCompile(`(?m)^[^\n]*(?:[Rr]ead|[Cc]onsult)[^\n]*\bpi docs\b[^\n]*$`)

	// Per-file headings inside the project-context block. The heading
	// path must be absolute.
	agentsHeadingRe = regexp.MustCompile(`(?m)^## (/[^\n]*)$`)

	skillBlockRe = regexp.MustCompile(`(?s)<skill>.*?</skill>`)
	skillNameRe  = regexp.MustCompile(`(?s)<name>(.*?)</name>`)
	skillDescRe  = regexp.MustCompile(`(?s)<description>(.*?)</description>`)
	skillLocRe   = regexp.MustCompile(`(?s)<location>(.*?)</location>`)
)

// CountFunc measures the token cost of a text span. It must be
// deterministic; the same function is used for every span of one parse
// so the relative proportions stay coherent.
type CountFunc func(text string) int

// Child is a per-file or per-skill sub-entry of a section.
type Child struct {
	Label  string
	Chars  int
	Tokens int
}

// Section is one top-level contributor to the prompt budget.
type Section struct {
	Label    string
	Chars    int
	Tokens   int
	Children []Child
}

// SkillEntry is one skill extracted from the <available_skills> block.
type SkillEntry struct {
	Name        string
	Description string
	Location    string
	Chars       int
	Tokens      int
}

// Result is the aggregate of one parse. TotalChars and TotalTokens are
// measured over the entire input, never summed from section fields.
type Result struct {
	Sections    []Section
	Skills      []SkillEntry
	TotalChars  int
	TotalTokens int
}

// Parse segments an assembled prompt. It never fails: for any input,
// including the empty string, it returns a Result whose totals cover the
// whole input and whose sections cover whichever anchors were found.
func Parse(prompt string, count CountFunc) Result {
	if count == nil {
		count = func(string) int { return 0 }
	}

	res := Result{
		TotalChars:  len(prompt),
		TotalTokens: count(prompt),
	}

	projectIdx := strings.Index(prompt, projectContextAnchor)
	preambleIdx := strings.Index(prompt, skillsPreambleAnchor)
	// The metadata line could appear earlier as quoted content, so the
	// last occurrence wins.
	metaIdx := lastLineStart(prompt, metadataLinePrefix)

	baseEnd := len(prompt)
	if locs := piDocsLineRe.FindAllStringIndex(prompt, -1); len(locs) > 0 {
		baseEnd = locs[len(locs)-1][1]
	} else if idx := firstPositive(projectIdx, preambleIdx, metaIdx); idx >= 0 {
		baseEnd = idx
	}

	res.Sections = append(res.Sections, measure(LabelBase, prompt[:baseEnd], count))

	// Non-whitespace text between the base prompt and the next block is
	// appended SYSTEM.md / APPEND_SYSTEM.md content.
	if gapEnd := firstPositive(projectIdx, preambleIdx); gapEnd > baseEnd {
		if gap := strings.TrimSpace(prompt[baseEnd:gapEnd]); gap != "" {
			res.Sections = append(res.Sections, measure(LabelSystem, gap, count))
		}
	}

	if projectIdx >= 0 {
		res.Sections = append(res.Sections, parseAgents(prompt, projectIdx, preambleIdx, metaIdx, count))
	}

	if preambleIdx >= 0 {
		sec, skills := parseSkills(prompt, preambleIdx, metaIdx, count)
		res.Sections = append(res.Sections, sec)
		res.Skills = skills
	}

	if metaIdx >= 0 {
		res.Sections = append(res.Sections, measure(LabelMetadata, prompt[metaIdx:], count))
	}

	return res
}

// parseAgents slices the project-context block and splits it into one
// child per "## /<path>" heading, in source order.
func parseAgents(prompt string, projectIdx, preambleIdx, metaIdx int, count CountFunc) Section {
	start := projectIdx + len(projectContextAnchor)
	end := firstPositiveAfter(start, preambleIdx, metaIdx)
	if end < 0 {
		end = len(prompt)
	}
	slice := prompt[start:end]

	var children []Child
	heads := agentsHeadingRe.FindAllStringSubmatchIndex(slice, -1)
	for i, h := range heads {
		blockEnd := len(slice)
		if i+1 < len(heads) {
			blockEnd = heads[i+1][0]
		}
		block := strings.TrimSpace(slice[h[0]:blockEnd])
		children = append(children, Child{
			Label:  slice[h[2]:h[3]],
			Chars:  len(block),
			Tokens: count(block),
		})
	}

	sec := measure(LabelAgents, strings.TrimSpace(slice), count)
	sec.Children = children
	return sec
}

// parseSkills slices the skills section and, when the XML wrapper tags
// are present, extracts one entry per <skill> block in document order.
func parseSkills(prompt string, preambleIdx, metaIdx int, count CountFunc) (Section, []SkillEntry) {
	start := preambleIdx + len(skillsPreambleAnchor)
	end := metaIdx
	if end < start {
		end = len(prompt)
	}

	var skills []SkillEntry
	var children []Child
	openIdx := strings.Index(prompt, skillsOpenTag)
	closeIdx := strings.Index(prompt, skillsCloseTag)
	if openIdx >= 0 && closeIdx > openIdx {
		region := prompt[openIdx : closeIdx+len(skillsCloseTag)]
		for _, block := range skillBlockRe.FindAllString(region, -1) {
			entry := SkillEntry{
				Name:        tagText(skillNameRe, block, "unknown"),
				Description: tagText(skillDescRe, block, ""),
				Location:    tagText(skillLocRe, block, ""),
				Chars:       len(block),
				Tokens:      count(block),
			}
			skills = append(skills, entry)
			children = append(children, Child{Label: entry.Name, Chars: entry.Chars, Tokens: entry.Tokens})
		}
	}

	sec := measure(skillsLabel(len(skills)), strings.TrimSpace(prompt[start:end]), count)
	sec.Children = children
	return sec, skills
}

func skillsLabel(n int) string {
	return fmt.Sprintf("Skills (%d)", n)
}

func measure(label, text string, count CountFunc) Section {
	return Section{Label: label, Chars: len(text), Tokens: count(text)}
}

func tagText(re *regexp.Regexp, block, fallback string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}

// lastLineStart returns the index of the last occurrence of prefix that
// begins a line, or -1.
func lastLineStart(s, prefix string) int {
	for idx := strings.LastIndex(s, prefix); idx >= 0; idx = strings.LastIndex(s[:idx], prefix) {
		if idx == 0 || s[idx-1] == '\n' {
			return idx
		}
	}
	return -1
}

// firstPositive returns the smallest non-negative index, or -1 when all
// are negative. Anchors absent from the text are excluded this way.
func firstPositive(idxs ...int) int {
	best := -1
	for _, idx := range idxs {
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
		}
	}
	return best
}

// firstPositiveAfter is firstPositive restricted to indexes at or past
// min, which resolves overlapping out-of-order anchors by position.
func firstPositiveAfter(min int, idxs ...int) int {
	best := -1
	for _, idx := range idxs {
		if idx < min {
			continue
		}
		if best < 0 || idx < best {
			best = idx
		}
	}
	return best
}
