package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bonusrates/internal/adapters/cache"
	"bonusrates/internal/adapters/postgres"
	"bonusrates/internal/api"
	"bonusrates/internal/config"
	"bonusrates/internal/platform/db"
	httpserver "bonusrates/internal/platform/http"
	"bonusrates/internal/rate"
	"bonusrates/internal/rate/handler"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const startupTimeout = 10 * time.Second

// Run wires the application components, starts HTTP server and scheduler
func Run(cfgPath string) error {
	appCfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, schema, seeding)
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := connect(startupCtx, appCfg.DbServer)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, closeCache, err := newStore(pool, appCfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	if err = store.Initialize(startupCtx); err != nil {
		logrus.WithError(err).Error("Failed to initialize bonus rates")
		return err
	}
	logrus.Info("✅ Bonus rates initialized")

	rateService := rate.NewService(store)
	scheduler := rate.NewScheduler(store, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	rateHandler := handler.NewRateHandler(rateService)
	router := api.NewRouter(rateHandler, appCfg.HTTPServer.StaticDir)

	logrus.Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// InitDB applies migrations and seeds the default tiers, then returns.
func InitDB(cfgPath string) error {
	appCfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := connect(ctx, appCfg.DbServer)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := rate.NewStore(postgres.NewTierRepository(pool), nil)
	if err = store.Initialize(ctx); err != nil {
		return err
	}
	logrus.Info("✅ Bonus rates initialized")
	return nil
}

// PrintRates writes the current rate sheet to w as indented JSON.
func PrintRates(cfgPath string, w io.Writer) error {
	appCfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := connect(ctx, appCfg.DbServer)
	if err != nil {
		return err
	}
	defer pool.Close()

	sheet, err := rate.NewStore(postgres.NewTierRepository(pool), nil).ReadAll(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sheet)
}

func loadConfig(cfgPath string) (*config.AppConfig, error) {
	appCfg, err := config.Init(cfgPath)
	if err != nil {
		return nil, err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")
	return appCfg, nil
}

func connect(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	pool, err := db.CreatePoolAndPing(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, err
	}
	logrus.Info("✅ Postgres connection successful")
	return pool, nil
}

func newStore(pool *pgxpool.Pool, cfg config.Cache) (*rate.Store, func(), error) {
	repo := postgres.NewTierRepository(pool)
	if cfg.MaxItems <= 0 {
		return rate.NewStore(repo, nil), func() {}, nil
	}
	sheetCache, err := cache.NewRateSheetCache(cfg.MaxItems, time.Duration(cfg.TTLSeconds)*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("create rate sheet cache: %w", err)
	}
	return rate.NewStore(repo, sheetCache), sheetCache.Close, nil
}
