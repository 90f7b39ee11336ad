package cli

import (
	"github.com/spf13/cobra"

	"github.com/kontolab/konto-ingest/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <silver|gold>",
	Short: "Validate the Silver or Gold layer",
	Long: `Schema-validates the data lake. For Silver this checks every record
of every JSON file plus the rule/account cross-references, scores the
four quality dimensions and writes metadata/quality_report.json. For
Gold it parses every JSONL line and checks the split assignment.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"silver", "gold"},
	RunE:      runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	switch args[0] {
	case "silver":
		return validateSilver(cmd, a)
	default:
		return validateGold(cmd, a)
	}
}

func validateSilver(cmd *cobra.Command, a *app) error {
	report, err := validation.Silver(a.silver)
	if err != nil {
		return err
	}
	printValidation(cmd, report)

	quality, err := validation.Quality(a.silver)
	if err != nil {
		return err
	}
	if err := validation.WriteQualityReport(a.cfg.SilverDir, quality); err != nil {
		return err
	}
	cmd.Printf("quality: %.1f/100 (grade %s), report written to %s\n",
		quality.OverallScore, quality.Grade, validation.QualityReportFile)
	for _, rec := range quality.Recommendations {
		cmd.Printf("  recommendation: %s\n", rec)
	}

	if !report.OK() {
		return reportError("silver validation", report.TotalErrors())
	}
	return nil
}

func validateGold(cmd *cobra.Command, a *app) error {
	report, err := validation.Gold(a.cfg.GoldDir)
	if err != nil {
		return err
	}
	printValidation(cmd, report)

	if !report.OK() {
		return reportError("gold validation", report.TotalErrors())
	}
	return nil
}

func printValidation(cmd *cobra.Command, report *validation.Report) {
	for _, result := range report.Results {
		cmd.Printf("%s: %d records, %d errors\n", result.File, result.Records, result.Errors())
		for _, f := range result.Findings {
			if f.Record >= 0 {
				cmd.Printf("  [%s] record %d %s: %s\n", f.Severity, f.Record, f.Field, f.Message)
			} else {
				cmd.Printf("  [%s] %s: %s\n", f.Severity, f.Field, f.Message)
			}
		}
	}
}
