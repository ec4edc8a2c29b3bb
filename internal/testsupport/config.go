package testsupport

import (
	"path/filepath"
	"testing"

	"binder/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Catalog.File = filepath.Join(base, "catalog.json")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithScanWindows overrides the gate timing windows on the test config.
func WithScanWindows(stabilityMS, dedupSeconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.StabilityWindowMS = stabilityMS
		cfg.Scan.DedupWindowSeconds = dedupSeconds
	}
}
