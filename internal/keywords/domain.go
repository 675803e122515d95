package keywords

import "strings"

// DomainMatcher decides whether input is about Sepak Takraw. Vocabulary
// phrases match on whole lowercased tokens; the fallback terms match as
// plain substrings.
type DomainMatcher struct {
	index    map[string][][]string // first token -> candidate phrases
	fallback []string
}

// NewDomainMatcher builds a matcher from vocabulary phrases and substring
// fallback terms.
func NewDomainMatcher(vocabulary, fallback []string) *DomainMatcher {
	d := &DomainMatcher{index: make(map[string][][]string)}
	for _, p := range vocabulary {
		tokens := Tokenize(Normalize(p))
		if len(tokens) == 0 {
			continue
		}
		d.index[tokens[0]] = append(d.index[tokens[0]], tokens)
	}
	for _, f := range fallback {
		if f = Normalize(f); f != "" {
			d.fallback = append(d.fallback, f)
		}
	}
	return d
}

// NewDefaultDomainMatcher uses DomainVocabulary and the domain_core row of t.
func NewDefaultDomainMatcher(t Table) *DomainMatcher {
	core, _ := t.Lookup(CategoryDomainCore)
	return NewDomainMatcher(DomainVocabulary, core.Phrases)
}

// Match reports whether normalized input is on topic.
func (d *DomainMatcher) Match(input string) bool {
	tokens := Tokenize(input)
	for i, tok := range tokens {
		for _, phrase := range d.index[tok] {
			if containsSeq(tokens[i:min(i+len(phrase), len(tokens))], phrase) {
				return true
			}
		}
	}
	for _, f := range d.fallback {
		if strings.Contains(input, f) {
			return true
		}
	}
	return false
}
