package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/influencer-agent/internal/api"
	"github.com/BerylCAtieno/influencer-agent/internal/config"
	"github.com/BerylCAtieno/influencer-agent/internal/gemini"
	"github.com/BerylCAtieno/influencer-agent/internal/influencer"
	"github.com/BerylCAtieno/influencer-agent/internal/models"
	"github.com/BerylCAtieno/influencer-agent/internal/prompt"
	"github.com/BerylCAtieno/influencer-agent/internal/twitter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Gemini client
	geminiClient, err := gemini.NewGeminiClient(context.Background(), cfg.GoogleAPIKey, gemini.Options{
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		logger.Error("failed to create Gemini client", "error", err)
		os.Exit(1)
	}

	twitterClient := twitter.NewClient(context.Background(), twitter.Credentials{
		ConsumerKey:       cfg.TwitterConsumerKey,
		ConsumerSecret:    cfg.TwitterConsumerSecret,
		AccessToken:       cfg.TwitterAccessToken,
		AccessTokenSecret: cfg.TwitterAccessTokenSecret,
	}, twitter.WithTimeout(cfg.CallTimeout))

	manager := influencer.NewManager(
		prompt.NewBuilder(models.DefaultPersona()),
		geminiClient,
		twitterClient,
		influencer.WithCallTimeout(cfg.CallTimeout),
		influencer.WithLogger(logger),
	)

	router := api.NewRouter(api.NewHandler(manager, logger), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := serve(ctx, srv, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// serve runs srv until ctx is done or it fails to listen, then drains it.
// It returns the listen error, if any.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("AI Influencer Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
		close(serveErr)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	return <-serveErr
}
