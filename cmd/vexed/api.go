package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vexed/internal/api"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Serve the engine over HTTP.

Endpoints:
  POST /v1/parse, /v1/settle, /v1/move, /v1/solve
  GET  /v1/packs, /v1/packs/{pack}/levels/{n}
  POST /v1/sessions, GET/DELETE /v1/sessions/{id}
  POST /v1/sessions/{id}/move
  POST /v1/sessions/{id}/{restart|next|previous|play-again}
  GET  /v1/ws   (websocket, streams settlement frames)

Examples:
  vexed api
  vexed api --http :9090`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address, overrides the config")
}

func runAPI(_ *cobra.Command, _ []string) error {
	opts := api.OptionsFromConfig(cfg)
	opts.Logger = logger
	if flagHTTPAddr != "" {
		opts.Address = flagHTTPAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Vexed API on %s\n", opts.Address)
	return api.New(opts).ListenAndServe(ctx)
}
