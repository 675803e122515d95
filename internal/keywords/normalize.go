package keywords

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Typographic quotes fold to ASCII so "what’s the time" matches "what's the time".
var quoteFolder = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)

// Normalize prepares input for matching: NFKC, quote folding, lowercasing
// and trimming. It returns "" for blank input.
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = quoteFolder.Replace(s)
	// A Caser is stateful, so each call gets its own.
	return strings.TrimSpace(cases.Lower(language.English).String(s))
}

// Tokenize splits normalized text into word tokens. Letters, digits and
// apostrophes belong to words; everything else separates them. A possessive
// "'s" becomes its own token, so "takraw's" yields "takraw" and "'s".
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		if base, ok := strings.CutSuffix(f, "'s"); ok && base != "" {
			tokens = append(tokens, base, "'s")
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
