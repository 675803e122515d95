package keywords

import "strings"

// Topic is a coarse Sepak Takraw sub-topic used for metrics and logs.
type Topic string

// Topics in classification priority order.
const (
	TopicNone          Topic = ""
	TopicRules         Topic = "rules"
	TopicHistory       Topic = "history"
	TopicEquipment     Topic = "equipment"
	TopicTechniques    Topic = "techniques"
	TopicRoles         Topic = "roles"
	TopicCompetitions  Topic = "competitions"
	TopicCompare       Topic = "compare"
	TopicFamousPlayers Topic = "famous players"
)

type topicRow struct {
	topic Topic
	words map[string]struct{}
}

var topicRows = buildTopicRows([]struct {
	topic Topic
	words []string
}{
	{TopicRules, []string{"rule", "regulation", "play", "how", "gameplay"}},
	{TopicHistory, []string{"history", "origin", "start", "begin", "invent", "when", "who"}},
	{TopicEquipment, []string{"ball", "net", "gear", "equipment", "court", "uniform"}},
	{TopicTechniques, []string{"spike", "kick", "block", "header", "toe", "serve"}},
	{TopicRoles, []string{"tekong", "feeder", "striker", "position", "player", "team"}},
	{TopicCompetitions, []string{"match", "tournament", "sea games", "olympics"}},
	{TopicCompare, []string{"compare", "difference", "vs", "volleyball", "football", "soccer"}},
	{TopicFamousPlayers, []string{"famous", "players", "countries", "popular", "played in"}},
})

func buildTopicRows(in []struct {
	topic Topic
	words []string
}) []topicRow {
	rows := make([]topicRow, 0, len(in))
	for _, r := range in {
		set := make(map[string]struct{}, len(r.words))
		for _, w := range r.words {
			set[w] = struct{}{}
		}
		rows = append(rows, topicRow{topic: r.topic, words: set})
	}
	return rows
}

// irregular maps inflected forms whose lemma suffix stripping cannot reach.
var irregular = map[string]string{
	"began": "begin",
	"begun": "begin",
	"went":  "go",
}

// ClassifyTopic returns the first sub-topic hit while scanning input tokens
// left to right. Each token is tried with its lemma candidates and, for
// two-word keywords, joined with the following token. TopicNone means no hit.
func ClassifyTopic(input string) Topic {
	tokens := Tokenize(Normalize(input))
	for i, tok := range tokens {
		cands := lemmaCandidates(tok)
		if i+1 < len(tokens) {
			cands = append(cands, tok+" "+tokens[i+1])
		}
		for _, row := range topicRows {
			for _, c := range cands {
				if _, ok := row.words[c]; ok {
					return row.topic
				}
			}
		}
	}
	return TopicNone
}

// lemmaCandidates returns tok plus the base forms a light English suffix
// stripper can produce. Candidates shorter than three runes are skipped so
// "is" never becomes "i".
func lemmaCandidates(tok string) []string {
	out := []string{tok}
	if base, ok := irregular[tok]; ok {
		return append(out, base)
	}
	add := func(s string) {
		if len(s) >= 3 {
			out = append(out, s)
		}
	}
	switch {
	case strings.HasSuffix(tok, "ies"):
		add(strings.TrimSuffix(tok, "ies") + "y")
	case strings.HasSuffix(tok, "es"):
		add(strings.TrimSuffix(tok, "es"))
		add(strings.TrimSuffix(tok, "s"))
	case strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss"):
		add(strings.TrimSuffix(tok, "s"))
	}
	if base, ok := strings.CutSuffix(tok, "ing"); ok {
		add(base)
		add(base + "e")
	}
	if base, ok := strings.CutSuffix(tok, "ed"); ok {
		add(base)
		add(base + "e")
	}
	return out
}
