package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/extract"
	"github.com/lorehaven/fablemap/internal/logging"
)

var traindataInput string

var traindataCmd = &cobra.Command{
	Use:   "traindata",
	Short: "Prepare aligned training examples for the external model trainer",
	Long: "Reads gold labels (native JSON or an annotation-tool export), aligns every\n" +
		"entity back onto its source text, resolves overlaps, and writes the span\n" +
		"file the NER training stack consumes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := traindataInput
		if in == "" {
			in = filepath.Join(cfg.Paths.AnnotationDir, "gold_standard_training.json")
		}

		gold, err := corpus.ReadGoldJSON(in)
		if err != nil {
			return err
		}

		examples := extract.PrepareExamples(gold)
		spans := 0
		for _, ex := range examples {
			spans += len(ex.Spans)
		}
		logging.Info("prepared training examples", "examples", len(examples), "spans", spans)

		out := filepath.Join(cfg.Paths.AnnotationDir, "training_examples.json")
		data, err := json.MarshalIndent(examples, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to marshal training examples: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		logging.Info("wrote training examples", "path", out)
		return nil
	},
}

func init() {
	traindataCmd.Flags().StringVar(&traindataInput, "input", "", "gold label file (defaults to the annotate output)")
	rootCmd.AddCommand(traindataCmd)
}
