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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/ratemycafe/internal/audit"
	"github.com/BruksfildServices01/ratemycafe/internal/auth"
	"github.com/BruksfildServices01/ratemycafe/internal/config"
	dbpkg "github.com/BruksfildServices01/ratemycafe/internal/db"
	"github.com/BruksfildServices01/ratemycafe/internal/metrics"
	"github.com/BruksfildServices01/ratemycafe/internal/routes"
	"github.com/BruksfildServices01/ratemycafe/internal/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		buckets storage.Buckets
		memory  []*storage.MemoryBucket
	)
	switch cfg.StorageDriver {
	case "memory":
		cafeImages := storage.NewMemoryBucket(storage.BucketCafeImages, cfg.StoragePublicURL)
		avatars := storage.NewMemoryBucket(storage.BucketAvatars, cfg.StoragePublicURL)
		buckets = storage.Buckets{CafeImages: cafeImages, Avatars: avatars}
		memory = []*storage.MemoryBucket{cafeImages, avatars}
		slog.Warn("using in-memory object storage, uploads are lost on restart")
	default:
		client := storage.NewS3Client(storage.S3Options{
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
		})
		buckets = storage.Buckets{
			CafeImages: storage.NewS3Bucket(client, storage.BucketCafeImages, cfg.StoragePublicURL),
			Avatars:    storage.NewS3Bucket(client, storage.BucketAvatars, cfg.StoragePublicURL),
		}
	}

	// ======================================================
	// MAGIC LINK NONCES
	// ======================================================
	rdb := dbpkg.NewRedisClient(cfg)
	var nonces auth.NonceStore = auth.NewMemoryNonceStore()
	if rdb != nil {
		nonces = auth.NewRedisNonceStore(rdb)
		defer rdb.Close()
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.Default()
	app, err := routes.RegisterRoutes(r, cfg, routes.Infra{
		DB:      db,
		Redis:   rdb,
		Buckets: buckets,
		Memory:  memory,
		Store:   auth.NewCookieStore(cfg.SessionSecret, cfg.IsProd()),
		Nonces:  nonces,
		Mailer:  auth.LogMailer{},
		Audit:   auditDispatcher,
		Metrics: metrics.New(),
	})
	if err != nil {
		slog.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Gallery.RunReconciler(ctx, cfg.GalleryReconcileInterval)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	auditDispatcher.Close()
}
