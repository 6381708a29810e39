// Package cmd contains the shopcanvas subcommands.
package cmd

import (
	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/config"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/supabase"
	"github.com/spf13/cobra"
)

// newRepository builds the store repository from the resolved configuration.
func newRepository(cmd *cobra.Command) (*store.Repository, *config.Config, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Backend.URL == "" || cfg.Backend.APIKey == "" {
		return nil, nil, errors.ConfigInvalid(
			"backend.url and backend.api_key are required (shopcanvas.yml or SHOPCANVAS_SUPABASE_URL / SHOPCANVAS_SUPABASE_KEY)")
	}

	client, err := supabase.New(supabase.Config{
		URL:    cfg.Backend.URL,
		APIKey: cfg.Backend.APIKey,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "backend client setup failed")
	}

	return store.NewRepository(client, cfg.Backend.Bucket), cfg, nil
}

// historyLimit maps the config value onto the history container's contract:
// zero already became the default in config, negative means uncapped.
func historyLimit(cfg *config.Config) int {
	if cfg.Editor.HistoryLimit < 0 {
		return 0
	}
	return cfg.Editor.HistoryLimit
}
