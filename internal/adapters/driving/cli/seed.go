package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the chart of accounts and business rules to Silver",
	Long: `Writes the NS 4102 chart of accounts and the deterministic business
rules to the Silver layer after cross-validating that every rule
references an existing account.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	started := time.Now()
	if err := seed.Run(a.silver); err != nil {
		return err
	}

	if a.catalog != nil {
		run := domain.Run{
			ID:         uuid.NewString(),
			Stage:      domain.StageSeed,
			StartedAt:  started,
			FinishedAt: time.Now(),
			Total:      2,
			Processed:  2,
		}
		if err := a.catalog.SaveRun(cmd.Context(), run); err != nil {
			logger.Warn("recording seed run: %v", err)
		}
	}

	cmd.Printf("seeded %s and %s in %s\n", seed.ChartFile, seed.RulesFile, a.cfg.SilverDir)
	return nil
}
