// Package bot routes a user message through an ordered chain of handlers
// and returns the first structured Response. The chain ends with a
// generation fallback, so every message gets an answer.
package bot

import (
	"bytes"
	"encoding/json"
)

// Suggestion is a follow-up prompt shown to the user. It serializes to a
// bare string unless it carries a link.
type Suggestion struct {
	Text string
	Link string
}

type suggestionObject struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

func (s Suggestion) MarshalJSON() ([]byte, error) {
	if s.Link == "" {
		return json.Marshal(s.Text)
	}
	return json.Marshal(suggestionObject(s))
}

func (s *Suggestion) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		s.Link = ""
		return json.Unmarshal(b, &s.Text)
	}
	var obj suggestionObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*s = Suggestion(obj)
	return nil
}

// Suggest turns plain texts into link-less suggestions.
func Suggest(texts ...string) []Suggestion {
	out := make([]Suggestion, len(texts))
	for i, t := range texts {
		out[i] = Suggestion{Text: t}
	}
	return out
}

// Response is the outcome of one routed message.
type Response struct {
	Text        string       `json:"text"`
	Suggestions []Suggestion `json:"suggestions"`
	Image       string       `json:"image,omitempty"`
	IFrame      string       `json:"iframe,omitempty"`
	SurveyLink  string       `json:"survey_link,omitempty"`

	// Rule names the handler that produced the response.
	Rule string `json:"-"`
}

// MarshalJSON keeps "suggestions" an array even when empty.
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	if r.Suggestions == nil {
		r.Suggestions = []Suggestion{}
	}
	return json.Marshal(plain(r))
}
