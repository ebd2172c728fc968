// Package analyze holds the reporting passes that sit on top of the label
// files: character frequency summaries and the targeted scan for names the
// model keeps missing.
package analyze

import (
	"context"
	"sort"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/extract"
	"github.com/lorehaven/fablemap/internal/normalize"
)

type NameCount struct {
	Name  string
	Count int
}

type BookFrequencies struct {
	Book string
	Top  []NameCount
}

// CharacterFrequencies merges automated and manual entity columns per book,
// applies the alias map, drops short noise, and returns the topN names.
// Books come back sorted; ties inside a book break by name so output is
// stable across runs.
func CharacterFrequencies(rows []corpus.LabeledChunk, n *normalize.Normalizer, topN int) []BookFrequencies {
	perBook := make(map[string]map[string]int)

	for _, row := range rows {
		counts := perBook[row.BookID]
		if counts == nil {
			counts = make(map[string]int)
			perBook[row.BookID] = counts
		}

		combined := make(map[string]struct{})
		for _, name := range row.KeyEntities {
			combined[name] = struct{}{}
		}
		for _, name := range row.ManualEntities {
			combined[name] = struct{}{}
		}

		for name := range combined {
			if len(name) <= 2 {
				continue
			}
			counts[n.Alias(name)]++
		}
	}

	books := make([]string, 0, len(perBook))
	for book := range perBook {
		books = append(books, book)
	}
	sort.Strings(books)

	out := make([]BookFrequencies, 0, len(books))
	for _, book := range books {
		counts := perBook[book]
		top := make([]NameCount, 0, len(counts))
		for name, count := range counts {
			top = append(top, NameCount{Name: name, Count: count})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Name < top[j].Name
		})
		if topN > 0 && len(top) > topN {
			top = top[:topN]
		}
		out = append(out, BookFrequencies{Book: book, Top: top})
	}
	return out
}

// TargetScan runs the per-book known-name lexicons over the corpus and
// fills in the manual_entities column: a dictionary pass for the names the
// trained model is known to miss.
func TargetScan(ctx context.Context, chunks []corpus.Chunk, targets map[string][]string) ([]corpus.LabeledChunk, error) {
	models := make(map[string]*extract.LexiconModel, len(targets))
	for book, names := range targets {
		models[book] = extract.NewLexiconModel(extract.CharacterLexicon(names))
	}

	rows := make([]corpus.LabeledChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if ctx.Err() != nil {
			return rows, ctx.Err()
		}
		row := corpus.LabeledChunk{BookID: chunk.BookID, ChunkID: chunk.ChunkID, Text: chunk.Text}

		if model, ok := models[chunk.BookID]; ok {
			spans, err := model.Predict(ctx, chunk.Text)
			if err != nil {
				return rows, err
			}
			seen := make(map[string]struct{}, len(spans))
			for _, span := range spans {
				if _, dup := seen[span.Text]; dup {
					continue
				}
				seen[span.Text] = struct{}{}
				row.ManualEntities = append(row.ManualEntities, span.Text)
			}
			row.ManualCount = len(row.ManualEntities)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
