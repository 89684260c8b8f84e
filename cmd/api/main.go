package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jaekwang-park/todo-crud/internal/config"
	todohttp "github.com/jaekwang-park/todo-crud/internal/http"
	"github.com/jaekwang-park/todo-crud/internal/repository"
	"github.com/jaekwang-park/todo-crud/internal/service"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), config.Usage())
	}
	flag.Parse()

	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), "postgres", "postgres"); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// run starts the service on the given database/sql driver and goose dialect
// and blocks until ctx is cancelled or a termination signal arrives.
func run(ctx context.Context, driverName, dialect string) error {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"port", cfg.HTTPPort,
		"log_level", cfg.LogLevel,
		"db_max_conns", cfg.DB.MaxConns,
		"auto_migrate", cfg.DB.AutoMigrate,
	)

	// Database connection
	db, err := repository.NewDB(ctx, driverName, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		ConnectTimeout:  cfg.DB.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	if cfg.DB.AutoMigrate {
		if err := repository.Migrate(ctx, db, dialect, logger); err != nil {
			return err
		}
	}

	todoRepo := repository.NewPostgresTodo(db)
	todoSvc := service.NewTodoService(todoRepo)

	srv := todohttp.NewServer(cfg.HTTPPort, logger, todoSvc, db, cfg.HTTP)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	default:
	}
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
