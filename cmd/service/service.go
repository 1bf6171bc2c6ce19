// @title        ECarry Photography API
// @version      1.0
// @description  ECarry Photography 後台的個人資料 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
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

	"ecarry-photography/internal/cache"
	"ecarry-photography/internal/config"
	"ecarry-photography/internal/database"
	"ecarry-photography/internal/events"
	"ecarry-photography/internal/logging"
	appmw "ecarry-photography/internal/middleware"
	"ecarry-photography/internal/profile"
	"ecarry-photography/internal/router"
	"ecarry-photography/internal/service"
	"ecarry-photography/internal/worker"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	_ "ecarry-photography/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	shutdownTimeout = 10 * time.Second
	workerQueueSize = 64
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newWorkerPool   = worker.NewPool
	newPublisher    = func(url string) (events.Publisher, error) {
		if url == "" {
			return events.NoopPublisher{}, nil
		}
		return events.NewNATSPublisher(url)
	}
	startServer = serve
	exitFunc    = os.Exit
)

// serve 啟動 HTTP 服務，ctx 結束時優雅關閉
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newEcho(cfg *config.Config, db database.DB, c cache.Cache, profiles *service.ProfileService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = profile.NewEchoValidator()
	e.Use(middleware.Recover())
	e.Use(appmw.RequestLogger(log.Logger))

	router.Setup(e, db, c, profiles, cfg.JWTSecret)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("關閉 Redis 連線失敗")
		}
	}()

	// 回滾並執行遷移
	if cfg.DatabaseReset {
		log.Warn().Msg("DATABASE_RESET 已啟用，回滾所有 migration")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %v", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	pub, err := newPublisher(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("NATS 連線失敗: %v", err)
	}
	defer pub.Close()

	// pool 需在 publisher 關閉前停止，讓排隊中的事件送出
	wp := newWorkerPool(cfg.WorkerCount, workerQueueSize)
	defer wp.Stop()

	profiles := service.NewProfileService(db, rdb, pub, wp, clockwork.NewRealClock(), cfg.ProfileCacheTTL)
	e := newEcho(cfg, db, rdb, profiles)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newCORS(cfg.CORSOrigins).Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().
		Str("addr", srv.Addr).
		Int("workers", cfg.WorkerCount).
		Bool("nats", cfg.NATSURL != "").
		Msg("starting profile service")
	return startServer(ctx, srv)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
