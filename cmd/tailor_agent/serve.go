package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating, editing and rendering documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to the configured port, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	port := settings.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	runner, cleanup, err := newRunner(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	sink, err := newSink(ctx)
	if err != nil {
		return fmt.Errorf("failed to create artifact sink: %w", err)
	}

	srv := server.New(server.Config{
		Port:         port,
		PreviewScale: settings.PreviewScale,
	}, server.Deps{
		Runner:   runner,
		Renderer: newRenderer(),
		Sink:     sink,
		Logger:   logger,
	})
	return srv.Start()
}
