// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/olegiv/rollcall/internal/config"
	"github.com/olegiv/rollcall/internal/logging"
	"github.com/olegiv/rollcall/internal/middleware"
	"github.com/olegiv/rollcall/internal/render"
	"github.com/olegiv/rollcall/internal/scheduler"
	"github.com/olegiv/rollcall/internal/service"
	"github.com/olegiv/rollcall/internal/session"
	"github.com/olegiv/rollcall/internal/store"
	"github.com/olegiv/rollcall/internal/version"
	"github.com/olegiv/rollcall/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// eventLogLevel is the lowest log level mirrored into the event log.
const eventLogLevel = slog.LevelWarn

// Rate limit for the public form posts (register, contact).
const (
	formRateLimit = 1.0
	formBurst     = 5
)

// app holds everything the router needs.
type app struct {
	cfg             *config.Config
	db              *sql.DB
	sessionManager  *scs.SessionManager
	renderer        *render.Renderer
	accounts        *service.AccountService
	students        *service.StudentService
	contacts        *service.ContactService
	events          *service.EventService
	loginProtection *middleware.LoginProtection
	formLimiter     *middleware.GlobalRateLimiter
	scheduler       *scheduler.Scheduler
	versionInfo     version.Info
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Rollcall - student roster web application\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_SECRET_KEY              Secret key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_CSRF_SECRET             CSRF secret (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_DB_PATH                 SQLite database path (default: ./data/rollcall.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_SERVER_HOST             Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_SERVER_PORT             Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_ENV                     Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_LOG_LEVEL               debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_EVENT_RETENTION_DAYS    Event log retention, 0 keeps forever (default: 90)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_ADMIN_EMAIL             Bootstrap admin email (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_ADMIN_PASSWORD          Bootstrap admin password (min 6 characters)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_ADMIN_PHONE             Bootstrap admin phone (10-20 digits)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_TRUST_PROXY             Use X-Forwarded-For/X-Real-IP from a reverse proxy (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ROLLCALL_ADMIN_NAME              Bootstrap admin name (default: Administrator)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	// Ensure data directory exists
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db, eventLogLevel)))
	slog.Info("event log integration enabled", "min_level", eventLogLevel.String())

	ctx := context.Background()
	if err := store.SeedAdmin(ctx, db, store.AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Phone:    cfg.AdminPhone,
		Name:     cfg.AdminName,
	}); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	defer session.StopCleanup(sessionManager)

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	a := &app{
		cfg:             cfg,
		db:              db,
		sessionManager:  sessionManager,
		renderer:        renderer,
		accounts:        service.NewAccountService(db, sessionManager),
		students:        service.NewStudentService(db),
		contacts:        service.NewContactService(db),
		events:          service.NewEventService(db, cfg.SecretKey),
		loginProtection: loginProtection,
		formLimiter:     middleware.NewGlobalRateLimiter(formRateLimit, formBurst),
		versionInfo:     versionInfo,
	}

	sched := scheduler.New(slog.Default())
	if cfg.EventRetentionDays > 0 {
		if err := sched.Add(scheduler.EventRetentionJob(a.events, cfg.EventRetentionDays, slog.Default())); err != nil {
			return fmt.Errorf("scheduling event retention: %w", err)
		}
	}
	if err := sched.Add(scheduler.LimiterPruneJob(a.formLimiter.Prune)); err != nil {
		return fmt.Errorf("scheduling limiter prune: %w", err)
	}
	sched.Start()
	defer sched.Stop()
	a.scheduler = sched

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           a.routes(dataDir),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Label())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
