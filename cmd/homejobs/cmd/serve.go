package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/homejobs/internal/app"
	"github.com/nfrund/homejobs/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	defer func() {
		if err := application.Shutdown(); err != nil {
			slog.Error("Shutdown finished with errors", "error", err)
		}
	}()

	srv, err := application.Server()
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	if err := srv.RegisterRoutes(ctx); err != nil {
		return err
	}
	return srv.Start(ctx)
}
