package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorehaven/fablemap/internal/corpus"
	"github.com/lorehaven/fablemap/internal/driver"
	"github.com/lorehaven/fablemap/internal/graph"
	"github.com/lorehaven/fablemap/internal/logging"
	"github.com/lorehaven/fablemap/internal/normalize"
)

var (
	exportInput       string
	exportPush        bool
	exportCommunities bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build the co-occurrence graph and write Neo4j import files",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := exportInput
		if in == "" {
			in = filepath.Join(cfg.Paths.ProcessedDir, "ai_gold_labels.csv")
		}
		rows, err := corpus.ReadLabels(in)
		if err != nil {
			return err
		}

		n := normalize.New(cfg.Normalizer)
		builder := graph.NewBuilder()

		logging.Info("building graph", "rows", len(rows))
		for _, row := range rows {
			builder.AddChunk(row.BookID, rowMentions(n, row))
		}

		nodes := builder.Nodes()
		edges := builder.Edges()

		nodesOut := filepath.Join(cfg.Paths.ProcessedDir, "gold_nodes.csv")
		if err := graph.WriteNodesCSV(nodesOut, nodes); err != nil {
			return err
		}
		edgesOut := filepath.Join(cfg.Paths.ProcessedDir, "gold_relationships.csv")
		if err := graph.WriteEdgesCSV(edgesOut, edges); err != nil {
			return err
		}
		logging.Info("wrote import files", "nodes", len(nodes), "relationships", len(edges))

		if exportCommunities {
			communities := graph.Communities(nodes, edges)
			commOut := filepath.Join(cfg.Paths.ProcessedDir, "gold_communities.csv")
			if err := graph.WriteCommunitiesCSV(commOut, communities); err != nil {
				return err
			}
			logging.Info("wrote communities", "path", commOut, "communities", len(communities))
		}

		if exportPush {
			if cfg.Neo4j.URI == "" {
				logging.Warn("no Neo4j URI configured, skipping push")
				return nil
			}
			d, err := driver.NewNeo4jDriver(cmd.Context(), cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
			if err != nil {
				return err
			}
			defer d.Close(cmd.Context())

			if err := d.BuildIndices(cmd.Context()); err != nil {
				return err
			}
			if err := driver.ImportGraph(cmd.Context(), d, nodes, edges); err != nil {
				return err
			}
		}
		return nil
	},
}

// rowMentions turns one label row into normalized mentions. Gold rows carry
// model labels that go through reconciliation; rows with bare name lists
// (automated + manual merges) get classified by the rule chain alone.
func rowMentions(n *normalize.Normalizer, row corpus.LabeledChunk) []corpus.Mention {
	var mentions []corpus.Mention

	if len(row.Labeled) > 0 {
		for _, m := range row.Labeled {
			name, ok := n.Clean(m.Name)
			if !ok {
				continue
			}
			label, ok := n.Reconcile(name, m.Label)
			if !ok {
				continue
			}
			mentions = append(mentions, corpus.Mention{Name: name, Label: label})
		}
		return mentions
	}

	names := append(append([]string{}, row.KeyEntities...), row.ManualEntities...)
	for _, raw := range names {
		name, ok := n.Clean(raw)
		if !ok {
			continue
		}
		label, ok := n.Classify(name)
		if !ok {
			continue
		}
		mentions = append(mentions, corpus.Mention{Name: name, Label: label})
	}
	return mentions
}

func init() {
	exportCmd.Flags().StringVar(&exportInput, "input", "", "label file to export (defaults to the gold labels)")
	exportCmd.Flags().BoolVar(&exportPush, "push", false, "also push the graph over bolt")
	exportCmd.Flags().BoolVar(&exportCommunities, "communities", false, "also detect and write entity communities")
	rootCmd.AddCommand(exportCmd)
}
