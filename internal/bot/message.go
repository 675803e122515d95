package bot

import "github.com/bolabot/bolabot-go/internal/session"

// Message is the routed input plus the sender's session.
type Message struct {
	Raw    string // trimmed, original casing; used for generation and NER
	Clean  string // normalized, used for matching
	UserID string

	// Session is nil for handlers that run before the session is loaded.
	Session *session.Session

	mutations []func(*session.Session)
	scratch   map[string]any
}

// Remember stores a value computed in CanHandle for use in Handle.
func (m *Message) Remember(key string, v any) {
	if m.scratch == nil {
		m.scratch = make(map[string]any)
	}
	m.scratch[key] = v
}

// Recall returns a value stored with Remember.
func (m *Message) Recall(key string) (any, bool) {
	v, ok := m.scratch[key]
	return v, ok
}

// Mutate changes the session and records the change so it can be replayed
// if persisting loses a compare-and-swap race.
func (m *Message) Mutate(fn func(*session.Session)) {
	if m.Session == nil {
		return
	}
	fn(m.Session)
	m.mutations = append(m.mutations, fn)
}

// Dirty reports whether the session was changed.
func (m *Message) Dirty() bool {
	return len(m.mutations) > 0
}

// replay applies every recorded mutation to s.
func (m *Message) replay(s *session.Session) {
	for _, fn := range m.mutations {
		fn(s)
	}
}
