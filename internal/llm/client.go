package llm

import (
	"context"
)

// Client is a minimal text-in, text-out surface over a hosted model. The
// labeler is its only consumer; everything it needs is one-shot generation.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
