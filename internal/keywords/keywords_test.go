package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowers", "  HeLLo  ", "hello"},
		{"folds curly apostrophe", "What’s the time", "what's the time"},
		{"fullwidth letters", "ＴＡＫＲＡＷ", "takraw"},
		{"blank", " \t\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"how", "to", "play", "takraw"}, Tokenize("how to play takraw?"))
	assert.Equal(t, []string{"takraw", "'s", "origin"}, Tokenize("takraw's origin"))
	assert.Equal(t, []string{"what", "'s", "up"}, Tokenize("what's up"))
	assert.Empty(t, Tokenize("?!"))
}

func TestMatcher_Modes(t *testing.T) {
	t.Parallel()
	m := NewMatcher(DefaultTable())

	tests := []struct {
		name     string
		category Category
		input    string
		want     bool
	}{
		{"exit substring", CategoryExit, "ok bye for now", true},
		{"exit inside word", CategoryExit, "goodbyes", true},
		{"greeting exact", CategoryGreeting, "hi", true},
		{"greeting not exact", CategoryGreeting, "hi there", false},
		{"survey accept", CategorySurveyAccept, "yes, take me to the survey", true},
		{"survey decline", CategorySurveyDecline, "no thanks", true},
		{"time substring quirk", CategoryTime, "i know", true},
		{"identity", CategoryIdentity, "who are you really", true},
		{"detail", CategoryDetail, "please explain the spike", true},
		{"unknown category", Category("nope"), "bye", false},
		{"empty input", CategoryExit, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Match(tt.category, tt.input))
		})
	}
}

func TestMatcher_PhraseMode(t *testing.T) {
	t.Parallel()
	m := NewMatcher(Table{{Category: "p", Phrases: []string{"Sea Games"}, Mode: Phrase}})

	got, ok := m.Find("p", "who won the sea games?")
	assert.True(t, ok)
	assert.Equal(t, "sea games", got)
	assert.False(t, m.Match("p", "overseas games"))
}

func TestMatcher_FirstRowWins(t *testing.T) {
	t.Parallel()
	m := NewMatcher(Table{
		{Category: "x", Phrases: []string{"a"}, Mode: Exact},
		{Category: "x", Phrases: []string{"b"}, Mode: Exact},
	})
	assert.True(t, m.Match("x", "a"))
	assert.False(t, m.Match("x", "b"))
}

func TestDomainMatcher(t *testing.T) {
	t.Parallel()
	d := NewDefaultDomainMatcher(DefaultTable())

	tests := []struct {
		input string
		want  bool
	}{
		{"how many players on a team", true},
		{"what is the court size", true},
		{"tell me about asian games", true},
		{"i love sepaktakraw", true}, // substring fallback
		{"recipe for nasi lemak", false},
		{"networking tips", true}, // "tips" is vocabulary
		{"networking", false},     // "net" only matches a whole token
		{"is it popular in indonesia", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Match(Normalize(tt.input)))
		})
	}
}

func TestDomainVocabularySplitsAdjacentPhrases(t *testing.T) {
	t.Parallel()
	for _, w := range []string{"indonesia", "injury", "legends", "time", "current", "name"} {
		found := false
		for _, p := range DomainVocabulary {
			if Normalize(p) == w {
				found = true
				break
			}
		}
		assert.True(t, found, "missing %q", w)
	}
}

func TestClassifyTopic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  Topic
	}{
		{"What are the rules?", TopicRules},
		{"How did it begin", TopicRules}, // "how" comes first
		{"Who invented takraw", TopicHistory},
		{"It began in Malaysia", TopicHistory},
		{"Tell me about the balls", TopicEquipment},
		{"The spikes are amazing", TopicTechniques},
		{"What does the tekong do", TopicRoles},
		{"Famous players", TopicFamousPlayers},
		{"Best players", TopicRoles},
		{"Who won the SEA Games", TopicHistory},
		{"Results from the SEA Games", TopicCompetitions},
		{"takraw vs volleyball", TopicCompare},
		{"nothing relevant here", TopicNone},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyTopic(tt.input))
		})
	}
}
