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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/config"
	"github.com/ayush/blog-moderation/backend/internal/drafts"
	"github.com/ayush/blog-moderation/backend/internal/logger"
	"github.com/ayush/blog-moderation/backend/internal/metrics"
	"github.com/ayush/blog-moderation/backend/internal/moderation"
	"github.com/ayush/blog-moderation/backend/internal/store"
	"github.com/ayush/blog-moderation/backend/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(finish(log, run(cfg, log)))
}

// finish logs the result of run and flushes the logger. It returns the
// process exit code.
func finish(log *zap.Logger, err error) int {
	code := 0
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		code = 1
	}
	_ = log.Sync()
	return code
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// ── Moderation store ─────────────────────────────────────
	seed := moderation.DefaultSeed(time.Now().UTC())
	if cfg.SeedFile != "" {
		var err error
		if seed, err = moderation.LoadSeedFile(cfg.SeedFile, time.Now().UTC()); err != nil {
			return err
		}
	}
	queue := moderation.NewStore(seed)
	log.Info("moderation store ready",
		zap.Int("pending_users", len(seed.Users)),
		zap.Int("drafts", len(seed.Drafts)),
		zap.String("seed_file", cfg.SeedFile),
	)

	// ── Redis (optional) ─────────────────────────────────────
	var events users.Publisher = store.Discard{}
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		events = store.NewRedisPublisher(rdb, cfg.RedisChannel)
		log.Info("moderation events enabled", zap.String("channel", cfg.RedisChannel))
	}

	// ── MinIO (optional) ─────────────────────────────────────
	var covers drafts.FileStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio connect: %w", err)
		}
		covers = minioStore
		log.Info("cover uploads enabled", zap.String("bucket", cfg.MinioBucket))
	}

	// ── Metrics ──────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, func() moderation.Counts { return queue.Counts(context.Background()) })

	// ── Handlers ─────────────────────────────────────────────
	handler := newRouter(deps{
		queue:       queue,
		users:       users.NewHandler(queue, events, m, log),
		drafts:      drafts.NewHandler(queue, events, covers, cfg.CoverMaxBytes, m, log),
		metrics:     m,
		log:         log,
		corsOrigins: cfg.CORSOrigins,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("backend listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
