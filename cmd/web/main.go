package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/audit-atlas/pkg/server"
	"github.com/de-tools/audit-atlas/pkg/services/runs"
)

var reportDir string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve emitted assessment reports over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&reportDir, "reports", "r", "reports",
		"Directory containing emitted assessment reports")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if _, err := os.Stat(reportDir); err != nil {
		return fmt.Errorf("report directory %q is not readable: %w", reportDir, err)
	}

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Explorer:  runs.NewExplorer(reportDir),
			ReportDir: reportDir,
			Logger:    logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
