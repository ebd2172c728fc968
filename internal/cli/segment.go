package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/logging"
	"github.com/lorehaven/fablemap/internal/segment"
)

var segStrategy string

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Split the text corpus into chunks and write the master corpus CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if segStrategy != "" {
			cfg.Segmenter.Strategy = segStrategy
		}

		books, err := filepath.Glob(filepath.Join(cfg.Paths.CorpusDir, "*.txt"))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", cfg.Paths.CorpusDir, err)
		}
		if len(books) == 0 {
			return fmt.Errorf("no .txt files found in %s", cfg.Paths.CorpusDir)
		}
		// Deterministic processing order regardless of directory iteration.
		sort.Strings(books)

		if err := os.MkdirAll(cfg.Paths.ProcessedDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.Paths.ProcessedDir, err)
		}

		seg := segment.New(cfg.Segmenter)
		var all []corpus.Chunk

		logging.Info("segmenting corpus", "books", len(books), "strategy", cfg.Segmenter.Strategy)
		for i, path := range books {
			bookID := strings.TrimSuffix(filepath.Base(path), ".txt")
			logging.Info("processing book", "n", i+1, "of", len(books), "book", bookID)

			raw, err := os.ReadFile(path)
			if err != nil {
				logging.Warn("could not read book, skipping", "book", bookID, "err", err)
				continue
			}

			chunks := seg.SegmentBook(bookID, string(raw))
			if len(chunks) == 0 {
				logging.Warn("no valid chunks extracted", "book", bookID)
				continue
			}
			logging.Info("segmented", "book", bookID, "chunks", len(chunks))
			all = append(all, chunks...)
		}

		if len(all) == 0 {
			return fmt.Errorf("no chunks produced from %s", cfg.Paths.CorpusDir)
		}

		out := filepath.Join(cfg.Paths.ProcessedDir, "master_corpus.csv")
		if err := corpus.WriteChunks(out, all); err != nil {
			return err
		}
		logging.Info("wrote master corpus", "path", out, "rows", len(all))
		return nil
	},
}

func init() {
	segmentCmd.Flags().StringVar(&segStrategy, "strategy", "", "chunking strategy: sentences or windows")
	rootCmd.AddCommand(segmentCmd)
}
