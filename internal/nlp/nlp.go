// Package nlp extracts named entities from user messages. The router only
// consumes PERSON spans, for name capture.
package nlp

import (
	"context"
	"errors"
)

// LabelPerson is the entity label for people's names.
const LabelPerson = "PERSON"

// Entity is a labeled span of the input.
type Entity struct {
	Label string
	Text  string
}

// Extractor finds entities in text. Input keeps its original casing.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}

// FirstPerson returns the first PERSON entity ex finds in text.
func FirstPerson(ctx context.Context, ex Extractor, text string) (string, bool, error) {
	ents, err := ex.Extract(ctx, text)
	for _, e := range ents {
		if e.Label == LabelPerson && e.Text != "" {
			return e.Text, true, nil
		}
	}
	return "", false, err
}

// Chain runs extractors in order and concatenates their entities. Errors
// are returned only when no extractor produced anything.
type Chain []Extractor

func (c Chain) Extract(ctx context.Context, text string) ([]Entity, error) {
	var (
		out  []Entity
		errs []error
	)
	for _, ex := range c {
		ents, err := ex.Extract(ctx, text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, ents...)
	}
	if len(out) == 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
