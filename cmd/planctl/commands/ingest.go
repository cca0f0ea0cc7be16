package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tripmate/internal/models/request_models"
)

var IngestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Split, embed and store reference documents for retrieval",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawTags, _ := cmd.Flags().GetString("tags")
		tags := splitTags(rawTags)

		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		total := 0
		for _, path := range args {
			text, err := readInput(cmd.InOrStdin(), []string{path})
			if err != nil {
				return err
			}
			n, err := rt.retrieval.Ingest(cmd.Context(), request_models.IngestRequest{
				Source: filepath.Base(path),
				Text:   text,
				Tags:   tags,
			})
			if err != nil {
				return fmt.Errorf("ingest %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d chunks\n", path, n)
			total += n
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %d chunks from %d files\n", total, len(args))
		return nil
	},
}

func init() {
	IngestCmd.Flags().String("tags", "", "comma separated tags stored with every chunk")
}
