package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/audit"
	"github.com/lorehaven/fablemap/internal/logging"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report size, token counts and health markers for the converted corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := audit.Run(cfg.Paths.CorpusDir)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			return fmt.Errorf("no .txt files found in %s", cfg.Paths.CorpusDir)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSIZE (MB)\tCHARS\tTOKENS\tSTART MARKER\tFLAGS")
		for _, r := range reports {
			flags := ""
			if r.HasNulls {
				flags += "[null-bytes]"
			}
			if r.Suspicious {
				flags += "[short-read]"
			}
			marker := r.StartMarker
			if marker == "" {
				marker = "-"
			}
			fmt.Fprintf(w, "%s\t%.2f\t%d\t%d\t%s\t%s\n",
				r.File, float64(r.SizeBytes)/(1024*1024), r.CharsRead, r.Tokens, marker, flags)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		logging.Info("audit complete", "files", len(reports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
