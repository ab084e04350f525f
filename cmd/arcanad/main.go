package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kolombo420/tarot/internal/adapters/catalog"
	httpadapter "github.com/kolombo420/tarot/internal/adapters/http"
	"github.com/kolombo420/tarot/internal/adapters/llm/gemini"
	"github.com/kolombo420/tarot/internal/adapters/llm/openrouter"
	"github.com/kolombo420/tarot/internal/adapters/llm/placeholder"
	"github.com/kolombo420/tarot/internal/adapters/profile"
	"github.com/kolombo420/tarot/internal/app"
	"github.com/kolombo420/tarot/internal/config"
	"github.com/kolombo420/tarot/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalogStore := catalog.NewEmbeddedStore()

	// Persistence is best-effort: an unopenable profile database degrades to
	// an in-memory store instead of refusing to start.
	var profileStore ports.ProfileStore
	if store, err := profile.Open(ctx, cfg.ProfileDBPath); err != nil {
		logger.Warn("profile database unavailable, history will not survive restarts",
			"path", cfg.ProfileDBPath, "error", err)
		profileStore = profile.NewMemoryStore()
	} else {
		profileStore = store
	}
	defer profileStore.Close()

	var artwork ports.ArtworkGenerator
	var interp ports.Interpreter
	var oracle ports.Oracle

	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel, logger)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		artwork, interp, oracle = client, client, client
	case "openrouter":
		client := openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		)
		// OpenRouter has no image models wired; cards fall back to seeded
		// placeholder artwork.
		artwork = placeholder.NewArtworkGenerator()
		interp, oracle = client, client
	}

	readingSvc := app.NewReadingService(catalogStore, artwork, interp, stdRNG{}, cfg.LLMTimeout, logger)
	wizardSvc := app.NewWizardService(readingSvc, profileStore, logger, cfg.DefaultLang)
	wizardSvc.LoadHistory(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(wizardSvc, catalogStore, oracle, cfg.DefaultLang)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "provider", cfg.LLMProvider)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
