package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luisjesusbernal/Geek-News/app/api"
	"github.com/luisjesusbernal/Geek-News/app/auth"
	"github.com/luisjesusbernal/Geek-News/app/cfg"
	"github.com/luisjesusbernal/Geek-News/app/database"
	"github.com/luisjesusbernal/Geek-News/app/mailer"
	"github.com/luisjesusbernal/Geek-News/app/news"
	"github.com/luisjesusbernal/Geek-News/app/newsletter"
	"github.com/luisjesusbernal/Geek-News/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Geek News server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	if err := os.MkdirAll(appCfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("Failed to create uploads directory: %v", err)
	}

	// Repositories
	userRepo := database.NewUserRepository(db)
	sessionRepo := database.NewSessionRepository(db)
	articleRepo := database.NewArticleRepository(db)
	favoriteRepo := database.NewFavoriteRepository(db)
	subscriberRepo := database.NewSubscriberRepository(db)
	campaignRepo := database.NewCampaignRepository(db)

	// Authentication
	authService := auth.NewService(userRepo, sessionRepo,
		time.Duration(appCfg.SessionTTLHours)*time.Hour)
	if err := authService.SeedAdmin(appCfg.AdminEmail, appCfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Section catalog
	sections := news.DefaultCatalog()
	if appCfg.SectionsFile != "" {
		sections, err = news.LoadCatalog(appCfg.SectionsFile)
		if err != nil {
			log.Fatalf("Failed to load section catalog: %v", err)
		}
	}
	slog.Info("Section catalog loaded", "count", sections.Count())

	// Newsletter delivery. Without SMTP settings every campaign run gets a
	// fresh sandbox account that records messages and yields preview links.
	var transportFactory mailer.TransportFactory
	if appCfg.SMTPHost != "" {
		smtpTransport := mailer.NewSMTPTransport(mailer.SMTPConfig{
			Host:     appCfg.SMTPHost,
			Port:     appCfg.SMTPPort,
			User:     appCfg.SMTPUser,
			Password: appCfg.SMTPPassword,
			StartTLS: appCfg.SMTPStartTLS,
		})
		transportFactory = func() (mailer.Transport, error) { return smtpTransport, nil }
		slog.Info("Mail transport configured", "mode", "smtp", "host", appCfg.SMTPHost)
	} else {
		transportFactory = func() (mailer.Transport, error) { return mailer.NewSandboxTransport() }
		slog.Info("Mail transport configured", "mode", "sandbox")
	}

	dispatcher := newsletter.NewDispatcher(campaignRepo, subscriberRepo, transportFactory,
		appCfg.MailFrom, appCfg.MailWorkerCount,
		time.Duration(appCfg.MailSendTimeoutSec)*time.Second)

	// Feed import
	httpClient := &http.Client{Timeout: 30 * time.Second}
	importer := news.NewImporter(articleRepo, httpClient, appCfg.UserAgent)

	// Background session cleanup
	janitor := tasks.NewJanitor(sessionRepo, time.Hour)
	janitor.Start()
	defer janitor.Stop()

	// HTTP server
	apiHandler := api.NewHandler(authService, userRepo, articleRepo, favoriteRepo,
		subscriberRepo, campaignRepo, dispatcher, importer, sections)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("API endpoints available",
			"news", fmt.Sprintf("http://localhost:%s/api/news", appCfg.Port),
			"rss", fmt.Sprintf("http://localhost:%s/rss", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port),
			"stats", fmt.Sprintf("http://localhost:%s/stats", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
