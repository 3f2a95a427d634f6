package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/charliesmith-boop/youtube-audit/internal/app"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/config"
)

func main() {
	mode := flag.String("mode", "", "Service mode (serve, audit, compare, retention)")
	channel := flag.String("channel", "", "Channel URL, @handle, or ID (audit mode)")
	channels := flag.String("channels", "", "Comma-separated channels (compare mode)")
	video := flag.String("video", "", "Video URL or ID (retention mode)")
	videos := flag.Int("videos", 0, "How many recent videos to fetch")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, &logger)

	// Start health server in background
	go func() {
		if err := application.StartHealthServer(ctx); err != nil {
			logger.Error().Err(err).Msg("health check server error")
		}
	}()

	if err := runMode(ctx, application, *mode, *channel, *channels, *video, *videos); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode, channel, channels, video string, videos int) error {
	switch mode {
	case "serve":
		return application.RunServe(ctx)
	case "audit":
		return application.RunAudit(ctx, channel, videos)
	case "compare":
		return application.RunCompare(ctx, splitChannels(channels), videos)
	case "retention":
		return application.RunRetention(ctx, video)
	default:
		log.Fatalf("Usage: %s --mode=[serve|audit|compare|retention]", os.Args[0])

		return nil
	}
}

func splitChannels(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
