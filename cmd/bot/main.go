// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maakle/bombo-go/internal/api"
	"github.com/maakle/bombo-go/internal/asset"
	"github.com/maakle/bombo-go/internal/bot"
	"github.com/maakle/bombo-go/internal/config"
	"github.com/maakle/bombo-go/internal/generation"
	"github.com/maakle/bombo-go/internal/storage"
	"github.com/maakle/bombo-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.SetLevel(cfg.Server.LogLevel)

	// A partially configured bot must not start.
	if err := config.Validate(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Configuration invalid")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage; the client handle lives for the whole process and
	// is shared by every command invocation.
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := storage.NewMinioStore(initCtx, storage.MinioConfig{
		Host:      cfg.Storage.Host,
		Port:      cfg.Storage.Port,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	cancel()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	logger.Log.Info().Str("bucket", cfg.Storage.Bucket).Msg("Storage initialized")

	// Initialize generation client
	generator, err := generation.NewClient(
		cfg.Generation.ReplicateToken,
		cfg.Generation.OpenAIKey,
		time.Duration(cfg.Generation.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize generation client")
	}

	loader := asset.NewReferenceLoader(cfg.Generation.ReferenceImagePath, cfg.Generation.ReferenceImageURL)

	pipeline := bot.NewPipeline(loader, generator, store)
	b := bot.New(cfg.Slack.BotToken, cfg.Slack.AppToken, pipeline)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.NewRouter(store),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Run(gctx)
	})

	g.Go(func() error {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting health server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Fatal().Err(err).Msg("Bot exited with error")
	}
	logger.Log.Info().Msg("Shutdown complete")
}
