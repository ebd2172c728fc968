// Package labeler produces gold-standard entity annotations by sending
// sampled chunks to a hosted model. Calls are rate limited and retried with
// exponential backoff; a chunk whose call never succeeds degrades to an
// empty annotation so the batch keeps moving.
package labeler

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lorehaven/fablemap/internal/config"
	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/llm"
	"github.com/lorehaven/fablemap/internal/logging"
	"github.com/lorehaven/fablemap/internal/util"
)

const labelPrompt = `Act as a high-level Computational Linguist. Extract entities from this fantasy text.

CATEGORIES:
- CHARACTER: Specific people, unique creatures (e.g., 'Ghost', 'Tyrion').
- LOCATION: Geographic sites, cities, specific buildings (e.g., 'Winterfell', 'The Eyrie').
- FACTION: Military groups, houses, races (e.g., 'House Stark', 'Aes Sedai', 'Andals').
- ARTIFACT: Unique named items (e.g., 'Ice', 'Shardblade', 'The One Ring').

STRICT NEGATIVE CONSTRAINTS:
1. DO NOT label Titles as Locations. 'King's Hand', 'Maester', and 'Princess' are NOT locations.
2. STRIP all possessives. 'Illyrio's' becomes 'Illyrio'. 'Winterfell's' becomes 'Winterfell'.
3. NO METADATA. Ignore chapter names, page numbers, or book titles.
4. NO DIALOGUE SNIPPETS. 'me?Bran' is forbidden. It must be 'Bran'.
5. NO ADJECTIVES. 'Alethi' (Faction) is okay, but 'Alethi Soulcaster' is an ARTIFACT.

Return ONLY JSON: {"entities": [ {"text": "Clean Name", "label": "LABEL"}, ... ]}

TEXT: %s`

// Table-of-contents and front-matter markers; chunks dominated by these
// confuse the model and get skipped.
var metadataIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Chapter \w+`),
	regexp.MustCompile(`(?i)Page \d+`),
	regexp.MustCompile(`(?i)Contents`),
	regexp.MustCompile(`(?i)Appendix`),
	regexp.MustCompile(`(?i)Prologue`),
	regexp.MustCompile(`(?i)Map of`),
}

type labelResponse struct {
	Entities []corpus.GoldEntity `json:"entities"`
}

type Labeler struct {
	client  llm.Client
	cfg     config.LabelerConfig
	limiter *rate.Limiter
}

func New(client llm.Client, cfg config.LabelerConfig) *Labeler {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2.5
	}
	return &Labeler{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// IsMetadata reports whether a chunk looks like front matter rather than
// narrative: more than two indicator hits in its opening.
func IsMetadata(text string) bool {
	snippet := text
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	hits := 0
	for _, re := range metadataIndicators {
		if re.MatchString(snippet) {
			hits++
		}
	}
	return hits > 2
}

// Sample filters metadata chunks and draws a random sample of up to n.
func Sample(chunks []corpus.Chunk, n int) []corpus.Chunk {
	clean := make([]corpus.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if !IsMetadata(c.Text) {
			clean = append(clean, c)
		}
	}

	rand.Shuffle(len(clean), func(i, j int) {
		clean[i], clean[j] = clean[j], clean[i]
	})
	if n < len(clean) {
		clean = clean[:n]
	}
	return clean
}

// LabelChunk annotates one text. After the retry budget is exhausted it
// returns an empty entity list, never an error: one bad chunk must not sink
// a two-thousand-call run.
func (l *Labeler) LabelChunk(ctx context.Context, text string) []corpus.GoldEntity {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil
	}

	entities, err := util.RetryWithBackoff(ctx, l.cfg.MaxRetries, func(ctx context.Context) ([]corpus.GoldEntity, error) {
		raw, err := l.client.Generate(ctx, fmt.Sprintf(labelPrompt, text))
		if err != nil {
			return nil, err
		}
		resp, err := llm.ParseJSON[labelResponse](raw)
		if err != nil {
			return nil, err
		}
		return resp.Entities, nil
	})
	if err != nil {
		logging.Warn("labeling failed after retries, returning empty result", "err", err)
		return nil
	}

	// Keep only labels from the closed set.
	kept := entities[:0]
	for _, e := range entities {
		if label, ok := corpus.RemapLabel(e.Label); ok && e.Text != "" {
			e.Label = label
			kept = append(kept, e)
		}
	}
	return kept
}

// Run labels a pre-drawn sample sequentially and assembles the gold
// training examples.
func (l *Labeler) Run(ctx context.Context, sample []corpus.Chunk) ([]corpus.GoldExample, error) {
	gold := make([]corpus.GoldExample, 0, len(sample))

	for i, chunk := range sample {
		if ctx.Err() != nil {
			return gold, ctx.Err()
		}
		logging.Info("labeling chunk",
			"n", i+1, "of", len(sample), "book", chunk.BookID, "chunk", chunk.ChunkID)

		gold = append(gold, corpus.GoldExample{
			ID:       uuid.New().String(),
			Text:     chunk.Text,
			Entities: l.LabelChunk(ctx, chunk.Text),
		})
	}

	return gold, nil
}
