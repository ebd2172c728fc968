package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/labeler"
	"github.com/lorehaven/fablemap/internal/llm"
	"github.com/lorehaven/fablemap/internal/logging"
)

var annotateSample int

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Label a corpus sample via the remote model and write gold training JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Fail on missing credentials before any work begins.
		client, err := llm.NewClient(cmd.Context(), cfg.LLM)
		if err != nil {
			return fmt.Errorf("labeling API not configured: %w", err)
		}

		in := filepath.Join(cfg.Paths.ProcessedDir, "master_corpus.csv")
		chunks, err := corpus.ReadChunks(in)
		if err != nil {
			return err
		}

		size := cfg.Labeler.SampleSize
		if annotateSample > 0 {
			size = annotateSample
		}
		sample := labeler.Sample(chunks, size)
		if len(sample) < size {
			logging.Warn("fewer usable chunks than requested", "want", size, "have", len(sample))
		}

		logging.Info("labeling sample", "chunks", len(sample), "provider", cfg.LLM.Provider)
		gold, err := labeler.New(client, cfg.Labeler).Run(cmd.Context(), sample)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Paths.AnnotationDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.Paths.AnnotationDir, err)
		}
		out := filepath.Join(cfg.Paths.AnnotationDir, "gold_standard_training.json")
		if err := corpus.WriteGoldJSON(out, gold); err != nil {
			return err
		}
		logging.Info("wrote gold training data", "path", out, "examples", len(gold))
		return nil
	},
}

func init() {
	annotateCmd.Flags().IntVar(&annotateSample, "sample", 0, "override sample size")
	rootCmd.AddCommand(annotateCmd)
}
