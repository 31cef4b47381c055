package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardgen/internal/infra"
)

func main() {
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.BaseURL, "base", envOr("API_BASE", "http://localhost:3001"), "API base URL")
	flag.StringVar(&opts.Theme, "theme", "", "theme to test (random when empty)")
	flag.BoolVar(&opts.Image, "image", false, "also generate and download an image")
	flag.BoolVar(&opts.All, "all", false, "generate a card for every theme in carousel order (implies -image)")
	flag.StringVar(&opts.ZipPath, "zip", "", "bundle downloaded cards into this zip file")
	flag.IntVar(&opts.Retries, "retries", 3, "attempts per step")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", time.Second, "wait between attempts")
	flag.DurationVar(&opts.Timeout, "timeout", 3*time.Minute, "per-request HTTP timeout")
	flag.Parse()

	logger := infra.NewLogger(envOr("APP_ENV", "development")).With().Str("cmd", "smoketest").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, opts, logger)
	if err != nil {
		logger.Error().Err(err).Msg("smoke test failed")
		os.Exit(1)
	}
	fmt.Println(report.Summary())
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
