package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/config"
	"github.com/shopcanvas/shopcanvas/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the `serve` command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve published storefronts over HTTP",
		Long: `Starts the public storefront server. Stores are routed by the Host header's
subdomain under serve.base_domain, with /s/{subdomain} as a path fallback.
The shopcanvas config file is hot-reloaded while the server runs.
`,
		RunE: runServeE,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides serve.addr)")

	return cmd
}

func runServeE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)
	logger := cli.GetLogger(cmd)

	repo, cfg, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	addr := cfg.Serve.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	srv := server.New(repo, cfg.Serve.BaseDomain)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Hot reload is best-effort; a missing config file just disables it.
	if path := configFilePath(cmd); path != "" {
		watcher, err := server.NewConfigWatcher(path, 250*time.Millisecond, func(c *config.Config) {
			srv.SetBaseDomain(c.Serve.BaseDomain)
		})
		if err != nil {
			logger.WithError(err).Warn("Config hot reload unavailable")
		} else {
			defer watcher.Close()
			go watcher.Start(ctx)
		}
	}

	httpSrv := &http.Server{Addr: addr, Handler: srv.Router()}
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("Storefront server listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return handler.Handle(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return handler.Handle(httpSrv.Shutdown(shutdownCtx))
}

func configFilePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	path, err := config.FindConfigFile(cwd)
	if err != nil {
		return ""
	}
	return path
}
