package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fsmedia "husbandry-tracker/internal/adapters/media/fs"
	s3media "husbandry-tracker/internal/adapters/media/s3"
	"husbandry-tracker/internal/adapters/storage/postgres"
	"husbandry-tracker/internal/adapters/storage/sqlite"
	"husbandry-tracker/internal/adapters/storage/sqlstore"
	"husbandry-tracker/internal/platform/config"
	"husbandry-tracker/internal/platform/logger"
	"husbandry-tracker/internal/platform/metrics"
	mediaport "husbandry-tracker/internal/ports/media"
	"husbandry-tracker/internal/router"
)

// @title           Husbandry Tracker API
// @version         1.0
// @description     Registro de animales, cruzas e incubaciones.
// @BasePath        /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("close db", map[string]any{"error": err.Error()})
		}
	}()

	store, err := sqlstore.New(db, dialect)
	if err != nil {
		return err
	}
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	media, err := openMedia(ctx, cfg.Media)
	if err != nil {
		return err
	}

	handler := router.NewRouter(router.Options{
		Store:          store,
		Media:          media,
		MaxUploadBytes: cfg.Media.MaxUploadMB << 20,
		Logger:         log,
		Metrics:        metrics.New(),
		StatsTTL:       cfg.StatsCacheTTL,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // uploads de hasta MEDIA_MAX_UPLOAD_MB
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"db_driver": cfg.DBDriver,
			"media":     string(media.Driver()),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func openDB(cfg config.Config) (*sql.DB, sqlstore.Dialect, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DBDSN)
		return db, sqlstore.DialectPostgres, err
	default:
		db, err := sqlite.Open(cfg.DBPath)
		return db, sqlstore.DialectSQLite, err
	}
}

func openMedia(ctx context.Context, cfg config.MediaConfig) (mediaport.Store, error) {
	if cfg.Driver == config.MediaS3 {
		return s3media.New(ctx, s3media.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	}
	return fsmedia.New(cfg.FSRoot)
}
