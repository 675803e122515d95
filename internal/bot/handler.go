package bot

import "context"

// Handler is one routing rule.
type Handler interface {
	// Name identifies the rule in logs and metrics.
	Name() string
	// CanHandle reports whether the rule applies to m.
	CanHandle(ctx context.Context, m *Message) bool
	// Handle produces the response. It may change the session through
	// m.Mutate.
	Handle(ctx context.Context, m *Message) Response
}

// Chain is the ordered rule set. PreSession handlers run before the session
// is loaded and must not touch it. Fallback answers when nothing matched.
type Chain struct {
	PreSession []Handler
	Session    []Handler
	Fallback   Handler
}

// Names lists handler names in evaluation order.
func (c Chain) Names() []string {
	names := make([]string, 0, len(c.PreSession)+len(c.Session)+1)
	for _, h := range c.PreSession {
		names = append(names, h.Name())
	}
	for _, h := range c.Session {
		names = append(names, h.Name())
	}
	if c.Fallback != nil {
		names = append(names, c.Fallback.Name())
	}
	return names
}
