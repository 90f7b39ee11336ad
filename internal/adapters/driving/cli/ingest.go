package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch sources into the Bronze layer",
	Long: `Fetches every manifest source and writes changed content to the
Bronze layer, then runs Silver processing unless --bronze-only is set.
Unchanged content is skipped; re-runs are cheap.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("domain", "", "only sources of one domain (tax, accounting, reporting)")
	ingestCmd.Flags().String("freq", "", "only sources with one crawl frequency (monthly, quarterly, onchange)")
	ingestCmd.Flags().Bool("bronze-only", false, "skip Silver processing after ingestion")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filter := sourceFilter(cmd)
	report, err := a.ingestor.Ingest(cmd.Context(), filter)
	if err != nil {
		return err
	}
	printReport(cmd, report)

	bronzeOnly, _ := cmd.Flags().GetBool("bronze-only")
	if !bronzeOnly {
		silverReport, err := a.processor.Process(cmd.Context(), filter)
		if err != nil {
			return err
		}
		printReport(cmd, silverReport)
		if !silverReport.OK() {
			return reportError("processing", silverReport.Failed)
		}
	}

	if !report.OK() {
		return reportError("ingestion", report.Failed)
	}
	return nil
}

// printReport writes the stage summary to the command output so it is
// visible without --verbose.
func printReport(cmd *cobra.Command, report *driving.RunReport) {
	cmd.Printf("%s: %d/%d items processed, %d failed\n",
		report.Stage, report.Processed, report.Total, report.Failed)
	for _, msg := range report.Errors {
		cmd.Printf("  error: %s\n", msg)
	}
}

// domainFromFlag normalises the --domain flag value.
func domainFromFlag(v string) domain.Domain {
	return domain.Domain(strings.ToLower(strings.TrimSpace(v)))
}

// freqFromFlag normalises the --freq flag value.
func freqFromFlag(v string) domain.CrawlFrequency {
	return domain.CrawlFrequency(strings.ToLower(strings.TrimSpace(v)))
}
