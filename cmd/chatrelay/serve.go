package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chatrelay/internal/app"
	"github.com/vovakirdan/chatrelay/internal/config"
	"github.com/vovakirdan/chatrelay/internal/log"
)

var (
	serveAddr     string
	serveHTTPAddr string
	serveLogLevel string
	serveChannel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat relay server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "TCP listen address")
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http-addr", "", "HTTP listen address for the WebSocket bridge")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&serveChannel, "default-channel", "", "channel new clients start in")
}

func runServe(_ *cobra.Command, _ []string) error {
	bootLog := log.New("info")

	cfg, path, err := config.Load(bootLog, configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UpdateFrom(config.Config{
		Addr:           serveAddr,
		HTTPAddr:       serveHTTPAddr,
		LogLevel:       serveLogLevel,
		DefaultChannel: serveChannel,
	})

	logger := log.New(cfg.LogLevel)
	logger.Info().
		Str("config", path).
		Str("addr", cfg.Addr).
		Str("http_addr", cfg.HTTPAddr).
		Str("default_channel", cfg.DefaultChannel).
		Msg("starting chatrelay")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
