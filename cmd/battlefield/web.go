package main

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

	"github.com/vovakirdan/battlefield/internal/platform/web"
	"github.com/vovakirdan/battlefield/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve battles to browsers over WebSocket",
	Long: `Start an HTTP server with a small battle viewer.

Each browser tab gets its own battlefield built from the configuration.
The viewer page accepts ?seed=<n>, ?speed=<x> and ?team=1 overrides.

Examples:
  battlefield web
  battlefield web --http :9000 --time-limit 60s`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	battle, err := loadBattle(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger().WithPrefix("battlefield-web")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("results will not be saved", "db", flagDBPath, "error", err)
	} else {
		defer store.Close()
	}

	srv := &http.Server{
		Addr: flagHTTPAddr,
		Handler: web.NewServer(web.Options{
			Battle: battle,
			Store:  store,
			Logger: logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck // Best effort on exit
	}()

	fmt.Printf("Battlefield viewer on http://localhost:%s/\n", portOf(flagHTTPAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
