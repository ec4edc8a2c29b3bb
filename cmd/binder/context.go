package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"binder/internal/catalog"
	"binder/internal/catalog/remote"
	"binder/internal/config"
	"binder/internal/ledger/store"
	"binder/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) buildLogger(out io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: out,
	})
}

// buildIndex constructs the catalog index the config selects: a local
// JSON file scanned in memory, or a remote search service.
func (c *commandContext) buildIndex() (catalog.Index, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	switch cfg.Catalog.Source {
	case "file":
		entries, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		return catalog.NewMemoryIndex(entries), nil
	case "remote":
		timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
		return remote.New(cfg.Catalog.BaseURL,
			remote.WithHTTPClient(&http.Client{Timeout: timeout}))
	default:
		return nil, fmt.Errorf("catalog.source: unsupported value %q", cfg.Catalog.Source)
	}
}

// withStore opens the ledger store for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store, *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s, cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
