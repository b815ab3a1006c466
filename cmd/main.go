package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"

	tornclient "github.com/Zcross091/torncity-bank-bot/clients/torn"
	"github.com/Zcross091/torncity-bank-bot/config"
	"github.com/Zcross091/torncity-bank-bot/core/log"
	"github.com/Zcross091/torncity-bank-bot/db"
	"github.com/Zcross091/torncity-bank-bot/handlers"
	"github.com/Zcross091/torncity-bank-bot/middleware"
	"github.com/Zcross091/torncity-bank-bot/services"
	"github.com/Zcross091/torncity-bank-bot/services/reports"
	"github.com/Zcross091/torncity-bank-bot/services/userrecords"
	"github.com/Zcross091/torncity-bank-bot/usecases/bank"
	"github.com/Zcross091/torncity-bank-bot/utils"
)

type Options struct {
	DataFile       string `long:"data-file"       description:"Path of the JSON user record file (overrides DATA_FILE)"`
	StorageBackend string `long:"storage-backend" description:"User record backend" choice:"json" choice:"sqlite" choice:"postgres"`
	Port           string `long:"port"            description:"Port of the health check server (overrides PORT)"`
	LogLevel       string `long:"log-level"       description:"Log level (overrides LOG_LEVEL)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := applyOptions(cfg, opts); err != nil {
		return err
	}

	if err := log.Setup(cfg.LogLevel, cfg.Environment); err != nil {
		return err
	}

	lock, err := utils.NewProcessLock(storeLocation(cfg.StorageConfig))
	if err != nil {
		return err
	}
	if err := lock.TryLock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("⚠️ Failed to release process lock: %v", err)
		}
	}()

	repo, closeRepo, err := newUserRecordsRepository(cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer closeRepo()

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "bankbot",
		LogsURL:     cfg.ServerLogsURL,
	})

	tornClient := tornclient.NewTornClient(http.DefaultClient, cfg.TornConfig.APIBaseURL, cfg.TornConfig.Comment)
	userRecordsService := userrecords.NewUserRecordsService(repo, tornClient)
	reportsService := reports.NewReportsService(tornClient)
	bankUseCase := bank.NewBankUseCase(userRecordsService, reportsService)

	discordHandler, err := handlers.NewDiscordCommandsHandler(
		cfg.DiscordConfig.BotToken,
		cfg.DiscordConfig.GuildID,
		bankUseCase,
		alertMiddleware,
	)
	if err != nil {
		return err
	}
	if err := discordHandler.StartBot(); err != nil {
		return err
	}
	defer discordHandler.StopBot()

	router := mux.NewRouter()
	handlers.SetupHealthEndpoint(router)

	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "HEAD"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func applyOptions(cfg *config.AppConfig, opts Options) error {
	if opts.DataFile != "" {
		cfg.StorageConfig.DataFile = opts.DataFile
	}
	if opts.StorageBackend != "" {
		cfg.StorageConfig.Backend = opts.StorageBackend
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg.Validate()
}

func storeLocation(storageConfig config.StorageConfig) string {
	if storageConfig.Backend == config.StorageBackendJSON {
		return storageConfig.DataFile
	}
	return storageConfig.DatabaseURL
}

func newUserRecordsRepository(storageConfig config.StorageConfig) (services.UserRecordsRepository, func(), error) {
	switch storageConfig.Backend {
	case config.StorageBackendJSON:
		repo, err := db.NewJSONFileUserRecordsRepository(storageConfig.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info("📋 Using JSON file storage at %s", storageConfig.DataFile)
		return repo, func() {}, nil
	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		dbConn, err := db.NewConnection(storageConfig.Backend, storageConfig.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("📋 Using %s storage", storageConfig.Backend)
		closeFn := func() {
			if err := dbConn.Close(); err != nil {
				log.Warn("⚠️ Failed to close database: %v", err)
			}
		}
		return db.NewSQLUserRecordsRepository(dbConn), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", storageConfig.Backend)
	}
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("✅ Health check listening on http://localhost%s/health", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case err := <-serverErr:
		return fmt.Errorf("health check server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error: %v", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
