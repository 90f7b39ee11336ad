// Package cli wires the pipeline services behind cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/kontolab/konto-ingest/internal/adapters/driven/config/file"
	"github.com/kontolab/konto-ingest/internal/adapters/driven/fetch"
	"github.com/kontolab/konto-ingest/internal/adapters/driven/storage/file"
	"github.com/kontolab/konto-ingest/internal/adapters/driven/storage/sqlite"
	"github.com/kontolab/konto-ingest/internal/core/ports/driven"
	"github.com/kontolab/konto-ingest/internal/core/ports/driving"
	"github.com/kontolab/konto-ingest/internal/core/services"
	"github.com/kontolab/konto-ingest/internal/logger"
	"github.com/kontolab/konto-ingest/internal/parsers/amelding"
	"github.com/kontolab/konto-ingest/internal/parsers/lovdata"
	"github.com/kontolab/konto-ingest/internal/parsers/rates"
	"github.com/kontolab/konto-ingest/internal/parsers/saft"
	"github.com/kontolab/konto-ingest/internal/sources"
)

// version is set at build time via -ldflags.
var version = "dev"

// ConfigEnv selects the config file when --config is not given.
const ConfigEnv = "KONTO_CONFIG"

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "konto-ingest",
	Short: "Norwegian accounting and tax data pipeline",
	Long: `konto-ingest fetches Norwegian legal and regulatory sources
(Lovdata, Skatteetaten, Altinn), normalises them through a
bronze/silver/gold data lake and exports chat-format training
datasets for accounting assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI, returning the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app bundles the configured adapters and services for one command
// invocation. Close releases the SQLite catalog.
type app struct {
	cfg     configfile.Config
	loader  *sources.Loader
	bronze  *file.BronzeStore
	silver  *file.SilverStore
	gold    *file.GoldStore
	catalog *sqlite.Store

	ingestor  driving.Ingestor
	processor driving.Processor
	exporter  *services.ExportService
}

// newApp loads the configuration and wires every service. The catalog
// is optional: a failure to open it degrades to file-only operation.
func newApp() (*app, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDataDirs(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		loader: sources.NewLoader(cfg.SourcesFile),
		bronze: file.NewBronzeStore(cfg.BronzeDir),
		silver: file.NewSilverStore(cfg.SilverDir),
		gold:   file.NewGoldStore(cfg.GoldDir),
	}

	catalog, err := sqlite.NewStore(cfg.CatalogDir)
	if err != nil {
		logger.Warn("opening catalog: %v (snapshots will not be recorded)", err)
	} else {
		a.catalog = catalog
	}

	fetchOpts := []fetch.Option{
		fetch.WithTimeout(cfg.HTTPTimeout()),
		fetch.WithRate(cfg.RatePerSecond),
	}
	if cfg.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetch.WithUserAgent(cfg.UserAgent))
	}

	catalogPort := catalogOrNil(a.catalog)
	a.ingestor = services.NewIngestService(a.loader, fetch.New(fetchOpts...), a.bronze, catalogPort, cfg.BronzeDir)
	a.processor = services.NewProcessService(a.loader, a.bronze, a.silver, catalogPort, services.Parsers{
		Sections: lovdata.New(),
		Rates:    rates.New(),
		Spec:     saft.New(),
		Guidance: amelding.New(),
	})
	a.exporter = services.NewExportService(a.silver, a.gold, catalogPort)
	return a, nil
}

func (a *app) Close() {
	if a.catalog != nil {
		if err := a.catalog.Close(); err != nil {
			logger.Warn("closing catalog: %v", err)
		}
	}
}

// catalogOrNil avoids handing services a typed-nil interface.
func catalogOrNil(s *sqlite.Store) driven.SnapshotStore {
	if s == nil {
		return nil
	}
	return s
}

// reportError converts a run report with failures into a command
// error so the process exits non-zero.
func reportError(stage string, failed int) error {
	return fmt.Errorf("%s finished with %d failed items", stage, failed)
}

// sourceFilter builds the manifest filter from the shared
// --domain/--freq flags of a command.
func sourceFilter(cmd *cobra.Command) driving.SourceFilter {
	var filter driving.SourceFilter
	if v, err := cmd.Flags().GetString("domain"); err == nil {
		filter.Domain = domainFromFlag(v)
	}
	if v, err := cmd.Flags().GetString("freq"); err == nil {
		filter.Freq = freqFromFlag(v)
	}
	return filter
}
