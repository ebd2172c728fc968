package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/epub"
	"github.com/lorehaven/fablemap/internal/logging"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert EPUB files to plain text",
	RunE: func(cmd *cobra.Command, args []string) error {
		epubs, err := filepath.Glob(filepath.Join(cfg.Paths.EpubDir, "*.epub"))
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", cfg.Paths.EpubDir, err)
		}
		if len(epubs) == 0 {
			return fmt.Errorf("no EPUB files found in %s", cfg.Paths.EpubDir)
		}
		sort.Strings(epubs)

		if err := os.MkdirAll(cfg.Paths.CorpusDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.Paths.CorpusDir, err)
		}

		logging.Info("converting EPUBs", "count", len(epubs))
		converted := 0
		for _, path := range epubs {
			text, err := epub.ExtractText(path)
			if err != nil || text == "" {
				logging.Warn("conversion failed or empty, skipping", "file", filepath.Base(path), "err", err)
				continue
			}

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
			out := filepath.Join(cfg.Paths.CorpusDir, name)
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				logging.Warn("failed to write converted text, skipping", "file", name, "err", err)
				continue
			}
			logging.Info("converted", "file", name, "chars", len(text))
			converted++
		}

		logging.Info("conversion done", "converted", converted, "total", len(epubs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
