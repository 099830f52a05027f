package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/history"
	"github.com/pagewatch/pagewatch/internal/monitor"
	"github.com/pagewatch/pagewatch/internal/notify"
	"github.com/pagewatch/pagewatch/internal/web"
)

// configPathEnv overrides the default config file location.
const configPathEnv = "PAGEWATCH_CONFIG"

// verifyTimeout bounds the startup SMTP verification.
const verifyTimeout = 30 * time.Second

func main() {
	// --- 1. Load Config ---
	path := os.Getenv(configPathEnv)
	if path == "" {
		path = "config.json"
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		os.Exit(1)
	}

	// --- 2. Setup Logger ---
	setupLogger(cfg.System.LogLevel)
	slog.Info("starting pagewatch", "sites", len(cfg.Sites))

	// --- 3. Read Mail Credentials ---
	creds, err := config.CredentialsFromEnv()
	if err != nil {
		slog.Error("missing mail credentials", "error", err)
		os.Exit(1)
	}

	// --- 4. Init & Verify Notifier ---
	mailer, err := notify.NewMailer(cfg.Mail, creds)
	if err != nil {
		slog.Error("failed to init mailer", "error", err)
		os.Exit(1)
	}

	verifyCtx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	err = mailer.Verify(verifyCtx)
	cancel()
	if err != nil {
		slog.Error("mail transport verification failed", "host", cfg.Mail.SMTPHost, "error", err)
		os.Exit(1)
	}
	slog.Info("mail transport verified", "host", cfg.Mail.SMTPHost, "account", creds.Account)

	// --- 5. Init History & Scheduler ---
	hist := history.New(cfg.System.MaxHistoryPoints)

	scheduler := monitor.NewScheduler(cfg.Sites, monitor.NewHTTPFetcher(), mailer, hist)
	scheduler.Start()

	// --- 6. Optional Ops Server ---
	var srv *http.Server
	if cfg.System.BindAddress != "" {
		srv = &http.Server{
			Addr:    cfg.System.BindAddress,
			Handler: web.NewRouter(cfg, hist),
		}
		go func() {
			slog.Info("ops server running", "address", cfg.System.BindAddress)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("ops server error", "error", err)
				os.Exit(1)
			}
		}()
	}

	// --- 7. Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("received shutdown signal", "signal", sig)

	scheduler.Stop()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("ops server forced shutdown", "error", err)
		}
	}

	slog.Info("pagewatch stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
