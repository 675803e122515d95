// Package keywords holds the static vocabulary that drives intent routing:
// one table of {category, phrases, mode} rows consumed by a single matcher,
// the domain phrase matcher used by the topic gate, and the sub-topic
// classifier.
package keywords

// Mode selects how a row's phrases are compared with normalized input.
type Mode int

const (
	// Substring matches when a phrase occurs anywhere in the input, including
	// inside longer words ("now" matches "know").
	Substring Mode = iota
	// Exact matches when the whole input equals a phrase.
	Exact
	// Phrase matches when a phrase's tokens occur as a contiguous run of
	// input tokens.
	Phrase
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Phrase:
		return "phrase"
	default:
		return "substring"
	}
}

// Category names a row of the keyword table.
type Category string

// Categories used by the router.
const (
	CategoryExit          Category = "exit"
	CategorySurveyAccept  Category = "survey_accept"
	CategorySurveyDecline Category = "survey_decline"
	CategoryGreeting      Category = "greeting"
	CategoryTime          Category = "time"
	CategoryIdentity      Category = "identity"
	CategoryImageRequest  Category = "image_request"
	CategoryDomainCore    Category = "domain_core"
	CategoryVideo         Category = "video"
	CategoryDetail        Category = "detail"
)

// Entry is one row of the table.
type Entry struct {
	Category Category
	Phrases  []string
	Mode     Mode
}

// Table is the ordered keyword configuration.
type Table []Entry

// DefaultTable returns the built-in keyword configuration.
func DefaultTable() Table {
	return Table{
		{CategoryExit, []string{"bye", "exit", "goodbye", "see you", "quit", "end chat"}, Substring},
		{CategorySurveyAccept, []string{"yes, take me to the survey"}, Exact},
		{CategorySurveyDecline, []string{"no thanks"}, Exact},
		{CategoryGreeting, []string{"hi", "hello", "hey"}, Exact},
		{CategoryTime, []string{"time", "current time", "date", "day", "today", "what time", "what's the time", "now"}, Substring},
		{CategoryIdentity, []string{"your name", "who are you"}, Substring},
		{CategoryImageRequest, []string{"image", "photo", "picture", "show me"}, Substring},
		{CategoryDomainCore, []string{"takraw", "sepak", "kick volleyball"}, Substring},
		{CategoryVideo, []string{"video", "show me a video"}, Substring},
		{CategoryDetail, []string{
			"explain", "why", "how does", "what is the reason", "in detail",
			"tell me more", "elaborate", "break it down", "deep dive",
		}, Substring},
	}
}

// Lookup returns the row for category.
func (t Table) Lookup(category Category) (Entry, bool) {
	for _, e := range t {
		if e.Category == category {
			return e, true
		}
	}
	return Entry{}, false
}

// DomainVocabulary is the Sepak Takraw phrase list used by the topic gate.
// Phrases are matched on whole tokens, case-insensitively.
var DomainVocabulary = []string{
	"sepak takraw", "takraw", "kick volleyball",
	"history", "origin", "start", "invention", "who invented", "what is the history",
	"how to play", "rules of the game", "game rules", "how to play takraw",
	"where is it from", "how did it start", "when did it begin",
	"rules", "regulations", "gameplay", "how is it played",
	"basic rules", "serve", "kick", "spike", "net", "court", "ball", "rotation",
	"positions", "scoring", "score", "sets", "rounds", "duration", "referee",
	"court size", "gear", "equipment", "uniform",
	"roll spike", "header", "toe kick", "sunback spike", "horse kick", "block", "service",
	"tekong", "feeder", "striker", "team", "player",
	"match", "tournament", "SEA Games", "Asian Games", "Olympics", "competition",
	"compare", "difference", "vs", "volleyball", "football", "soccer",
	"famous players", "countries", "popular in", "played in", "Malaysia", "Thailand", "Indonesia",
	"injury", "treatment", "recovery", "rehab", "exercise",
	"is it true", "is it real", "is it a myth", "is it fake", "is it true that",
	"is it a sport", "is it dangerous", "is it easy to learn", "is it popular",
	"how to improve", "how to get better", "training", "practice", "skills",
	"techniques", "strategies", "tips", "advice",
	"famous matches", "highlights", "best moments", "top plays", "greatest games",
	"motivation", "inspiration", "quotes", "stories", "legends",
	"time", "when", "day", "date", "today", "now", "current",
	"name", "who", "what is your name", "who are you", "identity", "my name is", "call me",
}
