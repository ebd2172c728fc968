package labeler

import (
	"context"
	"strings"

	"github.com/lorehaven/fablemap/internal/extract"
)

// Predict adapts the labeler into the extract.Model capability, so the
// extraction stage can run against the hosted model when no trained local
// model is available. Entities the model returns in cleaned form that no
// longer appear verbatim in the text keep a -1 offset.
func (l *Labeler) Predict(ctx context.Context, text string) ([]extract.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities := l.LabelChunk(ctx, text)
	spans := make([]extract.Span, 0, len(entities))
	for _, e := range entities {
		span := extract.Span{Start: -1, End: -1, Text: e.Text, Label: e.Label}
		if idx := strings.Index(text, e.Text); idx != -1 {
			span.Start = idx
			span.End = idx + len(e.Text)
		}
		spans = append(spans, span)
	}
	return spans, nil
}
