package nlp

import (
	"context"
	"fmt"
	"sync"

	"github.com/jdkato/prose/v2"
)

// proseModel loads the tagger and entity model once. Building it costs
// hundreds of milliseconds, so every document reuses the same instance.
var proseModel = sync.OnceValues(func() (*prose.Model, error) {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose: load model: %w", err)
	}
	return doc.Model, nil
})

// ProseExtractor runs prose's statistical entity recognizer.
type ProseExtractor struct{}

func (ProseExtractor) Extract(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := proseModel()
	if err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(model))
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}
	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		out = append(out, Entity{Label: e.Label, Text: e.Text})
	}
	return out, nil
}

// NewDefault returns the extractor used in production: the introduction
// patterns first, then the statistical model.
func NewDefault() Extractor {
	return Chain{PatternExtractor{}, ProseExtractor{}}
}
