package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/extract"
	"github.com/lorehaven/fablemap/internal/labeler"
	"github.com/lorehaven/fablemap/internal/llm"
	"github.com/lorehaven/fablemap/internal/logging"
)

var extractModel string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the entity model over every chunk and write the gold label CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := filepath.Join(cfg.Paths.ProcessedDir, "master_corpus.csv")
		chunks, err := corpus.ReadChunks(in)
		if err != nil {
			return err
		}

		var model extract.Model
		switch extractModel {
		case "lexicon":
			model = extract.NewLexiconModel(configLexicon())
		case "llm":
			client, err := llm.NewClient(cmd.Context(), cfg.LLM)
			if err != nil {
				return err
			}
			model = labeler.New(client, cfg.Labeler)
		default:
			return fmt.Errorf("unknown model %q (want lexicon or llm)", extractModel)
		}

		logging.Info("extracting entities", "chunks", len(chunks), "model", extractModel)
		rows, err := extract.NewRunner(model).Run(cmd.Context(), chunks)
		if err != nil {
			return err
		}

		out := filepath.Join(cfg.Paths.ProcessedDir, "ai_gold_labels.csv")
		if err := corpus.WriteGoldLabels(out, rows); err != nil {
			return err
		}
		logging.Info("wrote labels", "path", out, "rows", len(rows))
		return nil
	},
}

// configLexicon folds the heuristic knowledge bases into one dictionary
// model: known locations, known people, and every per-book target name.
func configLexicon() map[string]string {
	lex := make(map[string]string)
	for _, name := range cfg.Normalizer.KnownLocs {
		lex[name] = corpus.LabelLocation
	}
	for _, name := range cfg.Normalizer.KnownPeople {
		lex[name] = corpus.LabelCharacter
	}
	for _, names := range cfg.TargetMap {
		for _, name := range names {
			lex[name] = corpus.LabelCharacter
		}
	}
	return lex
}

func init() {
	extractCmd.Flags().StringVar(&extractModel, "model", "lexicon", "entity model: lexicon or llm")
	rootCmd.AddCommand(extractCmd)
}
