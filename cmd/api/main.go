package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardgen/internal/domain"
	"cardgen/internal/http/handlers"
	httpapi "cardgen/internal/http/httpapi"
	"cardgen/internal/imagegen"
	"cardgen/internal/infra"
	"cardgen/internal/providers/image"
	"cardgen/internal/providers/prompt"
	"cardgen/internal/storage"
)

func main() {
	// Optional .env
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	store, err := storage.NewFileStore(cfg.ImageSavePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ImageSavePath).Msg("failed to prepare image directory")
	}

	openaiClient, err := infra.NewOpenAIClient(cfg, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure openai client")
	}

	textGen, err := newTextGenerator(ctx, cfg, openaiClient)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.PromptProvider).Msg("failed to configure prompt provider")
	}
	themes := domain.DefaultThemeSet()
	synth, err := prompt.NewSynthesizer(prompt.Options{
		Themes:    themes,
		Generator: textGen,
		Logger:    &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build prompt synthesizer")
	}

	primary, err := image.NewOpenAIGenerator(openaiClient, image.OpenAIOptions{
		Model:    cfg.PrimaryImageModel,
		Quality:  "high",
		Delivery: image.DeliveryInline,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure primary image model")
	}
	fallback, err := image.NewOpenAIGenerator(openaiClient, image.OpenAIOptions{
		Model:              cfg.FallbackImageModel,
		Delivery:           image.DeliveryURL,
		SendResponseFormat: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure fallback image model")
	}
	orchestrator, err := imagegen.NewOrchestrator(imagegen.Options{
		Primary:        primary,
		Fallback:       fallback,
		Materializer:   image.NewMaterializer(&http.Client{Timeout: 2 * time.Minute}),
		Store:          store,
		PublicPrefix:   cfg.BaseImageURL,
		PrimaryTimeout: cfg.PrimaryImageTimeout,
		Logger:         &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build image orchestrator")
	}

	app := handlers.NewApp(logger, themes, synth, orchestrator, store)
	router := httpapi.NewRouter(cfg, app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("prompt_provider", textGen.Name()).
			Str("image_dir", store.BasePath()).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
