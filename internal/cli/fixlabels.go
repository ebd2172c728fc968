package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/analyze"
	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/logging"
)

var fixlabelsCmd = &cobra.Command{
	Use:   "fixlabels",
	Short: "Dictionary scan for per-book names the model keeps missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.ProcessedDir, "master_corpus.csv")
		chunks, err := corpus.ReadChunks(in)
		if err != nil {
			return err
		}
		if len(cfg.TargetMap) == 0 {
			logging.Warn("no target names configured, output will be empty")
		}

		logging.Info("scanning for target names", "chunks", len(chunks), "books", len(cfg.TargetMap))
		rows, err := analyze.TargetScan(cmd.Context(), chunks, cfg.TargetMap)
		if err != nil {
			return err
		}

		found := 0
		for _, row := range rows {
			found += row.ManualCount
		}

		out := filepath.Join(cfg.Paths.ProcessedDir, "manual_labels.csv")
		if err := corpus.WriteManualLabels(out, rows); err != nil {
			return err
		}
		logging.Info("wrote manual labels", "path", out, "rows", len(rows), "entities_found", found)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixlabelsCmd)
}
