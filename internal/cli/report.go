package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/analyze"
	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/logging"
	"github.com/lorehaven/fablemap/internal/normalize"
)

var (
	reportInput string
	reportTopN  int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Per-book character frequency report from the label files",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := reportInput
		if in == "" {
			in = filepath.Join(cfg.Paths.ProcessedDir, "automated_labels_cleaned.csv")
		}
		rows, err := corpus.ReadLabels(in)
		if err != nil {
			return err
		}

		// The manual pass lives in its own file; fold its entities into the
		// matching rows before counting.
		manualPath := filepath.Join(cfg.Paths.ProcessedDir, "manual_labels.csv")
		if manual, err := corpus.ReadLabels(manualPath); err == nil {
			merged := mergeManual(rows, manual)
			logging.Info("merged manual labels", "path", manualPath, "rows_matched", merged)
		} else if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("skipping manual labels", "path", manualPath, "error", err)
		}

		n := normalize.New(cfg.Normalizer)
		freqs := analyze.CharacterFrequencies(rows, n, reportTopN)

		out := filepath.Join(cfg.Paths.ProcessedDir, "final_character_frequencies.csv")
		if err := analyze.WriteFrequenciesCSV(out, freqs); err != nil {
			return err
		}

		for _, bf := range freqs {
			fmt.Printf("\n=== %s ===\n", bf.Book)
			for i, nc := range bf.Top {
				fmt.Printf("%2d. %-30s %d\n", i+1, nc.Name, nc.Count)
			}
		}

		logging.Info("wrote frequency report", "path", out, "books", len(freqs))
		return nil
	},
}

// mergeManual copies manual_entities into rows with the same book and chunk
// id and returns how many rows matched.
func mergeManual(rows, manual []corpus.LabeledChunk) int {
	type key struct {
		book  string
		chunk int
	}
	byID := make(map[key][]string, len(manual))
	for _, m := range manual {
		if len(m.ManualEntities) > 0 {
			byID[key{m.BookID, m.ChunkID}] = m.ManualEntities
		}
	}

	matched := 0
	for i := range rows {
		if ents, ok := byID[key{rows[i].BookID, rows[i].ChunkID}]; ok {
			rows[i].ManualEntities = ents
			rows[i].ManualCount = len(ents)
			matched++
		}
	}
	return matched
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "label file to report on (default automated_labels_cleaned.csv)")
	reportCmd.Flags().IntVar(&reportTopN, "top", 25, "names to keep per book")
	rootCmd.AddCommand(reportCmd)
}
