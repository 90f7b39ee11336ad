package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kontolab/konto-ingest/internal/core/services"
)

var exportCmd = &cobra.Command{
	Use:   "export <glossary|rules|synthetic|all>",
	Short: "Export Gold training datasets from Silver",
	Long: `Exports chat-format JSONL training datasets from the Silver layer:
glossary Q&A from law sections and the chart of accounts, posting
proposals from the business rules, and synthetic multi-turn
conversations. Samples are deduplicated, quality-filtered and split
train/val along family boundaries.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{services.ExportGlossary, services.ExportRules, services.ExportSynthetic, services.ExportAll},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().String("export-type", services.GlossaryBoth, "glossary type: tax, accounting or both")
	exportCmd.Flags().Float64("split-ratio", 0, "train share of the family split (default 0.8)")
	exportCmd.Flags().Int64("seed", 0, "random seed for shuffling and phrasing (default 42)")
	exportCmd.Flags().Int("variations-per-rule", 0, "posting samples per business rule (default 15)")
	exportCmd.Flags().Int("conversations-per-template", 0, "synthetic conversations per template (default 250)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := services.DefaultExportOptions()
	opts.Kind = args[0]
	if v, _ := cmd.Flags().GetString("export-type"); v != "" {
		switch v {
		case services.GlossaryTax, services.GlossaryAccounting, services.GlossaryBoth:
			opts.GlossaryType = v
		default:
			return fmt.Errorf("invalid export-type %q", v)
		}
	}
	if v, _ := cmd.Flags().GetFloat64("split-ratio"); v > 0 {
		opts.SplitRatio = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v > 0 {
		opts.Seed = v
	}
	if v, _ := cmd.Flags().GetInt("variations-per-rule"); v > 0 {
		opts.VariationsPerRule = v
	}
	if v, _ := cmd.Flags().GetInt("conversations-per-template"); v > 0 {
		opts.ConversationsPerTemplate = v
	}

	report, err := a.exporter.Export(cmd.Context(), opts)
	if err != nil {
		return err
	}
	printReport(cmd, report)

	if !report.OK() {
		return reportError("export", report.Failed)
	}
	return nil
}
