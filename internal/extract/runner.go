package extract

import (
	"context"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/logging"
)

// progressEvery controls how often the runner reports coarse progress.
const progressEvery = 1000

// Runner applies a model to every chunk in the corpus and collects the
// label rows. Per-chunk failures are logged and skipped; the batch always
// runs to completion.
type Runner struct {
	Model Model
}

func NewRunner(model Model) *Runner {
	return &Runner{Model: model}
}

// Run produces one labeled row per surviving chunk. A chunk whose prediction
// fails yields a row with no entities rather than aborting the batch.
func (r *Runner) Run(ctx context.Context, chunks []corpus.Chunk) ([]corpus.LabeledChunk, error) {
	rows := make([]corpus.LabeledChunk, 0, len(chunks))

	for i, chunk := range chunks {
		if ctx.Err() != nil {
			return rows, ctx.Err()
		}
		if i > 0 && i%progressEvery == 0 {
			logging.Info("extraction progress", "chunks", i, "total", len(chunks))
		}

		row := corpus.LabeledChunk{BookID: chunk.BookID, ChunkID: chunk.ChunkID}
		spans, err := r.Model.Predict(ctx, chunk.Text)
		if err != nil {
			logging.Warn("prediction failed, skipping chunk",
				"book", chunk.BookID, "chunk", chunk.ChunkID, "err", err)
			rows = append(rows, row)
			continue
		}

		for _, span := range spans {
			row.KeyEntities = append(row.KeyEntities, span.Text)
			row.Labeled = append(row.Labeled, corpus.Mention{Name: span.Text, Label: span.Label})
		}
		row.EntityCount = len(spans)
		rows = append(rows, row)
	}

	return rows, nil
}
