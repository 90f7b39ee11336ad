package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the pipeline settings. Every field has a default so the
// binary runs without a config file.
type Config struct {
	// DataDir is the root of the data lake.
	DataDir string `toml:"data_dir"`

	// BronzeDir, SilverDir and GoldDir override the per-tier layout.
	// Empty values derive from DataDir.
	BronzeDir string `toml:"bronze_dir"`
	SilverDir string `toml:"silver_dir"`
	GoldDir   string `toml:"gold_dir"`

	// CatalogDir holds the SQLite snapshot catalog.
	// Empty derives from DataDir.
	CatalogDir string `toml:"catalog_dir"`

	// SourcesFile is the CSV source manifest.
	SourcesFile string `toml:"sources_file"`

	// HTTPTimeoutSeconds bounds each fetch.
	HTTPTimeoutSeconds int `toml:"http_timeout_seconds"`

	// UserAgent identifies the pipeline to publishers.
	UserAgent string `toml:"user_agent"`

	// RatePerSecond limits fetch frequency.
	RatePerSecond float64 `toml:"rate_per_second"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		DataDir:            "data",
		SourcesFile:        filepath.Join("configs", "sources.csv"),
		HTTPTimeoutSeconds: 30,
		RatePerSecond:      1,
	}
}

// Load reads a TOML config file and fills unset fields with defaults.
// An empty path loads pure defaults; a missing file at an explicit path
// is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyDerived()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDerived fills per-tier directories from DataDir.
func (c *Config) applyDerived() {
	if c.BronzeDir == "" {
		c.BronzeDir = filepath.Join(c.DataDir, "bronze")
	}
	if c.SilverDir == "" {
		c.SilverDir = filepath.Join(c.DataDir, "silver")
	}
	if c.GoldDir == "" {
		c.GoldDir = filepath.Join(c.DataDir, "gold")
	}
	if c.CatalogDir == "" {
		c.CatalogDir = filepath.Join(c.DataDir, "catalog")
	}
}

// validate checks the settings every stage relies on.
func (c Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if c.SourcesFile == "" {
		return fmt.Errorf("config: sources_file must not be empty")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("config: http_timeout_seconds must be positive")
	}
	if c.RatePerSecond <= 0 {
		return fmt.Errorf("config: rate_per_second must be positive")
	}
	return nil
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// EnsureDataDirs creates the Bronze, Silver, Gold and catalog
// directories.
func (c Config) EnsureDataDirs() error {
	for _, dir := range []string{c.BronzeDir, c.SilverDir, c.GoldDir, c.CatalogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
