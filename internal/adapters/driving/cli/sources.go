package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source manifest",
	RunE:  runSources,
}

func init() {
	sourcesCmd.Flags().String("domain", "", "only sources of one domain (tax, accounting, reporting)")
	sourcesCmd.Flags().String("freq", "", "only sources with one crawl frequency (monthly, quarterly, onchange)")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	srcs, err := a.loader.Filter(sourceFilter(cmd))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOMAIN\tTYPE\tFREQ\tPUBLISHER")
	for _, s := range srcs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Domain, s.Type, s.CrawlFreq, s.Publisher)
	}
	return w.Flush()
}
