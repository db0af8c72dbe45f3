// Package server initializes and runs the EducaGestor application server.
// It opens the database, applies migrations, wires the services and starts
// the HTTP endpoint with graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/educagestor/educagestor/internal/logging"
	"github.com/educagestor/educagestor/internal/server/auth"
	"github.com/educagestor/educagestor/internal/server/config"
	"github.com/educagestor/educagestor/internal/server/httpapi"
	"github.com/educagestor/educagestor/internal/server/ratelimit"
	"github.com/educagestor/educagestor/internal/server/repositories/repomanager"
	"github.com/educagestor/educagestor/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	limiter, err := newLimiter(cfg)
	if err != nil {
		return nil, fmt.Errorf("limiter init error: %w", err)
	}

	codec := auth.NewCodec([]byte(cfg.SecretKey),
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)

	srv := httpapi.NewServer(logger, codec, httpapi.Services{
		Auth:        services.NewAuthService(db, m, codec, limiter, cfg),
		Users:       services.NewUserService(db, m),
		Students:    services.NewStudentService(db, m),
		Teachers:    services.NewTeacherService(db, m),
		Courses:     services.NewCourseService(db, m),
		Enrollments: services.NewEnrollmentService(db, m),
		Grades:      services.NewGradeService(db, m),
		Materials:   services.NewMaterialService(db, m, cfg),
	})

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// newLimiter selects the login-throttle backend: Redis when configured,
// in-memory otherwise.
func newLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RedisAddr != "" {
		return ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
	}
	return ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{}), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	httpServer := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.server.Handler(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
