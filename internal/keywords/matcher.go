package keywords

import "strings"

// Matcher evaluates normalized input against the rows of a Table.
type Matcher struct {
	rows map[Category]compiledEntry
}

type compiledEntry struct {
	Entry
	tokens [][]string // Phrase mode only
}

// NewMatcher compiles a table. Phrases are normalized once up front.
// A category listed twice keeps its first row.
func NewMatcher(t Table) *Matcher {
	m := &Matcher{rows: make(map[Category]compiledEntry, len(t))}
	for _, e := range t {
		if _, dup := m.rows[e.Category]; dup {
			continue
		}
		c := compiledEntry{Entry: Entry{Category: e.Category, Mode: e.Mode}}
		for _, p := range e.Phrases {
			p = Normalize(p)
			if p == "" {
				continue
			}
			c.Phrases = append(c.Phrases, p)
			if e.Mode == Phrase {
				c.tokens = append(c.tokens, Tokenize(p))
			}
		}
		m.rows[e.Category] = c
	}
	return m
}

// Match reports whether normalized input hits the category.
// Unknown categories never match.
func (m *Matcher) Match(category Category, input string) bool {
	_, ok := m.Find(category, input)
	return ok
}

// Find returns the first phrase of the category that hits input.
func (m *Matcher) Find(category Category, input string) (string, bool) {
	row, ok := m.rows[category]
	if !ok || input == "" {
		return "", false
	}
	switch row.Mode {
	case Exact:
		for _, p := range row.Phrases {
			if input == p {
				return p, true
			}
		}
	case Phrase:
		tokens := Tokenize(input)
		for i, pt := range row.tokens {
			if containsSeq(tokens, pt) {
				return row.Phrases[i], true
			}
		}
	default:
		for _, p := range row.Phrases {
			if strings.Contains(input, p) {
				return p, true
			}
		}
	}
	return "", false
}

// containsSeq reports whether needle occurs as a contiguous run in haystack.
func containsSeq(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, tok := range needle {
			if haystack[i+j] != tok {
				continue outer
			}
		}
		return true
	}
	return false
}
