// Package httpd implements the HTTP server exposing the scrape trigger.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/concursohub/crawler/cmd/common"
	"github.com/concursohub/crawler/internal/api"
)

const (
	readHeaderTimeout      = 10 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the HTTP scrape trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted. It handles
// graceful shutdown on SIGINT or SIGTERM.
func Start() error {
	deps, err := common.New()
	if err != nil {
		return err
	}
	defer deps.Close()

	router := api.SetupRouter(deps.Logger, deps.Runner, deps.DB)

	server := &http.Server{
		Addr:              deps.Config.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("http server listening", "address", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-sigCh:
		deps.Logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err = server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
