package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gateway/domain/repository"
	"media-gateway/infrastructure/cache"
	"media-gateway/infrastructure/clients/ytsearch"
	"media-gateway/infrastructure/configuration"
	"media-gateway/infrastructure/logger"
	"media-gateway/infrastructure/taskpool"
	"media-gateway/infrastructure/ytdlp"
	httpHandler "media-gateway/interfaces/http"
	"media-gateway/server"
	"media-gateway/usecase"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	cfg := configuration.C

	responseCache := initiateCache(ctx, cfg)

	pool := taskpool.New(cfg.Extractor.Workers)
	defer pool.Close()

	extractor := ytdlp.NewClient(ytdlp.Config{
		BinaryPath:          cfg.Extractor.BinaryPath,
		CookieFile:          cfg.Extractor.CookieFile,
		TempDir:             cfg.Extractor.TempDir,
		ConcurrentFragments: cfg.Extractor.ConcurrentFragments,
	})
	searchClient := ytsearch.NewClient(cfg.Search.Host)
	gateway := usecase.NewExtractionGateway(pool, extractor)

	mediaUseCase := usecase.NewMediaUseCase(gateway, searchClient, responseCache, usecase.Timeouts{
		Meta:     time.Duration(cfg.Timeouts.Meta) * time.Second,
		Full:     time.Duration(cfg.Timeouts.Full) * time.Second,
		Channel:  time.Duration(cfg.Timeouts.Channel) * time.Second,
		Playlist: time.Duration(cfg.Timeouts.Playlist) * time.Second,
		Social:   time.Duration(cfg.Timeouts.Social) * time.Second,
		Download: time.Duration(cfg.Timeouts.Download) * time.Second,
	}, cfg.Search.MaxResults)

	mediaHandler := httpHandler.NewMediaHandler(mediaUseCase)
	router := server.InitiateRouter(mediaHandler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	logger.GetLogger().
		WithField("port", cfg.App.Port).
		WithField("workers", cfg.Extractor.Workers).
		Info("Starting application")

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateCache selects the response-cache backend. Redis is opt-in; if it is
// unreachable the service degrades to the in-memory backend rather than
// failing startup.
func initiateCache(ctx context.Context, cfg configuration.Config) repository.IResponseCache {
	if cfg.Cache.Backend == "redis" {
		addr := fmt.Sprintf("%s:%s", cfg.RedisClient.Host, cfg.RedisClient.Port)
		redisCache, err := cache.NewRedisCache(ctx, addr, cfg.RedisClient.Username, cfg.RedisClient.Password)
		if err == nil {
			logger.GetLogger().WithField("addr", addr).Info("Redis response cache initialized")
			return redisCache
		}
		logger.GetLogger().WithField("error", err).Warn("Redis not available - falling back to in-memory cache")
	}
	return cache.NewMemoryCache()
}
