// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-search/internal/embed"
	"github.com/pdiddy/pubmed-search/internal/eutils"
	"github.com/pdiddy/pubmed-search/internal/logging"
	"github.com/pdiddy/pubmed-search/internal/mesh"
	"github.com/pdiddy/pubmed-search/internal/search"
	"github.com/pdiddy/pubmed-search/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PubMed search HTTP service",
	Long: `Serve starts the HTTP service exposing POST /search and GET /health.
The embedding client is initialized lazily on the first semantic request.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "TCP port to listen on (default 8000)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serviceConfig()
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	log := logging.New(viper.GetString("log.level"))

	client := eutils.NewClient(cfg.EUtils)
	pipeline := search.NewPipeline(
		client,
		mesh.NewResolver(client),
		func() (embed.Encoder, error) { return embed.Shared(cfg.Embedding) },
		log,
	)

	e := server.New(cfg.Server, pipeline, log)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
