package nlp

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PatternExtractor recognizes self-introductions such as "my name is Ali",
// "call me Ali" and "I'm Ali".
type PatternExtractor struct{}

var (
	// Explicit introductions accept any casing.
	explicitIntro = regexp.MustCompile(`(?i)\b(?:my name is|my name's|call me)\s+([\p{L}][\p{L}'-]*(?:\s+[\p{L}][\p{L}'-]*)?)`)
	// "I'm X" only counts when X is capitalized, so "i'm fine" is ignored.
	casualIntro = regexp.MustCompile(`(?i:\bi am|\bi'm|\bim)\s+(\p{Lu}[\p{L}'-]*)`)
)

// notNames are words that follow an introduction phrase without being a name.
var notNames = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "not": {}, "just": {}, "so": {}, "very": {},
	"fine": {}, "good": {}, "ok": {}, "okay": {}, "here": {}, "back": {},
	"from": {}, "new": {}, "interested": {}, "looking": {}, "curious": {},
	"sorry": {}, "bored": {}, "tired": {}, "sure": {}, "well": {},
	"and": {}, "but": {}, "i": {}, "im": {}, "i'm": {}, "to": {}, "please": {},
	"when": {}, "if": {}, "at": {}, "later": {}, "now": {}, "tomorrow": {},
}

func (PatternExtractor) Extract(_ context.Context, text string) ([]Entity, error) {
	text = strings.ReplaceAll(text, "’", "'")
	for _, re := range []*regexp.Regexp{explicitIntro, casualIntro} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := trimName(m[1])
		if name == "" {
			continue
		}
		return []Entity{{Label: LabelPerson, Text: name}}, nil
	}
	return nil, nil
}

// trimName drops trailing filler words and title-cases each word.
func trimName(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, stop := notNames[strings.ToLower(w)]; stop {
			break
		}
		kept = append(kept, capitalize(w))
	}
	return strings.Join(kept, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
