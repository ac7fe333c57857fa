package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/events"
	"careerflow-engine/internal/httpapi"
	"careerflow-engine/internal/scheduler"
	"careerflow-engine/internal/scrape/util"
	"careerflow-engine/internal/store"
)

const checkpointInterval = 15 * time.Minute

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("CAREERFLOW_LOG_LEVEL")),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("engine exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Engine data dir: use env if provided (the desktop shell passes one), else local folder.
	dataDir := os.Getenv("CAREERFLOW_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir, os.Getenv("CAREERFLOW_DEFAULT_CONFIG"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			slog.Warn("config", "path", userCfgPath, "warning", w)
		}
		if !vr.OK() {
			return cfg, config.Validate(cfg)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbDir := dataDir
	if cfg.App.DataDir != "" {
		dbDir = cfg.App.DataDir
	}
	dbPath := filepath.Join(dbDir, "careerflow.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	bgCtx, stopBg := context.WithCancel(ctx)
	var bg sync.WaitGroup
	defer func() {
		stopBg()
		bg.Wait()
	}()
	bg.Add(1)
	go func() {
		defer bg.Done()
		scheduler.Every(bgCtx, checkpointInterval, "wal_checkpoint", func(ctx context.Context) error {
			return store.Checkpoint(ctx, db.Pool)
		})
	}()

	var importStatus atomic.Value
	importStatus.Store(httpapi.ImportStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db.Pool,
		Hub:           events.NewHub(),
		CfgVal:        &cfgVal,
		ImportStatus:  &importStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		UploadLimiter: util.NewClientLimiter(float64(cfg.Import.RatePerMinute), 3),
	})

	srv := &http.Server{
		Handler:           httpapi.NewHandler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token := os.Getenv("CAREERFLOW_SHUTDOWN_TOKEN")
	if token == "" {
		token = uuid.NewString()
		if err := os.WriteFile(filepath.Join(dataDir, "engine.token"), []byte(token), 0o600); err != nil {
			return err
		}
	}
	mux.HandleFunc("/shutdown", shutdownHandler(token, srv))

	// Bind to localhost only; the engine is a single-user desktop backend.
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	slog.Info("engine listening", "addr", "http://"+addr, "db", dbPath, "config", userCfgPath)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("engine shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
