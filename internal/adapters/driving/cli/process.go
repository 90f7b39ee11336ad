package cli

import (
	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse Bronze content into Silver records",
	Long: `Parses the Bronze HTML of every manifest source into normalised
Silver records: law sections, VAT rates, SAF-T nodes and a-melding
rules. Sources without Bronze content are reported as failures.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("domain", "", "only sources of one domain (tax, accounting, reporting)")
	processCmd.Flags().String("freq", "", "only sources with one crawl frequency (monthly, quarterly, onchange)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.processor.Process(cmd.Context(), sourceFilter(cmd))
	if err != nil {
		return err
	}
	printReport(cmd, report)

	if !report.OK() {
		return reportError("processing", report.Failed)
	}
	return nil
}
