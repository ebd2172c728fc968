package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/logging"
	"github.com/lorehaven/fablemap/internal/normalize"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Scrub noise out of the automated label file",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.ProcessedDir, "automated_labels.csv")
		rows, err := corpus.ReadLabels(in)
		if err != nil {
			return err
		}

		n := normalize.New(cfg.Normalizer)
		logging.Info("refining labels", "rows", len(rows))

		before, after := 0, 0
		for i := range rows {
			before += len(rows[i].KeyEntities)
			rows[i].KeyEntities = n.ScrubEntityList(rows[i].KeyEntities)
			rows[i].EntityCount = len(rows[i].KeyEntities)
			after += rows[i].EntityCount
		}

		out := filepath.Join(cfg.Paths.ProcessedDir, "automated_labels_cleaned.csv")
		if err := corpus.WriteAutoLabels(out, rows); err != nil {
			return err
		}
		logging.Info("wrote cleaned labels", "path", out, "entities_before", before, "entities_after", after)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)
}
