package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talentsift/scout-cli/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured scrape sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := source.Load(cfg.Scrape.SourcesFile)
		if err != nil {
			return err
		}
		formatSources(os.Stdout, reg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// formatSources writes a tabular registry listing to w.
func formatSources(out io.Writer, reg source.Registry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tNAME\tENABLED\tPAGED\tBASE_URL")
	_, _ = fmt.Fprintln(w, "---\t----\t-------\t-----\t--------")

	for _, key := range reg.Keys() {
		src := reg[key]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%s\n",
			key,
			src.Name,
			src.Enabled,
			src.Paged(),
			src.BaseURL,
		)
	}
	_ = w.Flush()
}
