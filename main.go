package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger-core/internal/api"
	"ledger-core/internal/events"
	"ledger-core/internal/journal"
	"ledger-core/internal/monitor"
	"ledger-core/pkg/categories"
	"ledger-core/pkg/config"
	"ledger-core/pkg/db"
	"ledger-core/pkg/i18n"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(i18n.Get("ConfigLoadFailed"), err)
	}

	i18n.SetLanguage(i18n.Language(cfg.Language))
	log.Println(i18n.Get("Starting"))
	log.Printf(i18n.Get("ConfigLoaded"), cfg.Port)
	log.Printf(i18n.Get("UsingDBPath"), cfg.DBPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	buildVersion := os.Getenv("APP_VERSION")
	if buildVersion == "" {
		buildVersion = "v1.0-dev"
	}

	// Core services
	bus := events.NewBus()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf(i18n.Get("DBInitFailed"), err)
	}
	defer database.Close()
	if err := db.ApplyMigrations(database); err != nil {
		log.Fatalf(i18n.Get("DBMigrationsFailed"), err)
	}

	sysMetrics := monitor.NewSystemMetrics()
	journalMgr := journal.NewManager(database, bus, sysMetrics)

	// Optional category seeds: fills rule rows for pairs a user has not
	// configured yet, never overwrites existing figures.
	if cfg.CategoryConfig != "" {
		if err := seedCategories(ctx, database, cfg.CategoryConfig); err != nil {
			log.Printf(i18n.Get("CategorySeedFailed"), err)
		}
	}

	// API
	server := api.NewServer(bus, database, journalMgr, sysMetrics, api.Options{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       time.Duration(cfg.TokenTTLHours) * time.Hour,
		ResetCodeTTL:   time.Duration(cfg.ResetCodeTTLMinutes) * time.Minute,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Meta: api.SystemMeta{
			Version:  buildVersion,
			Language: cfg.Language,
		},
	})
	go func() {
		log.Printf(i18n.Get("ServerListening"), cfg.Port)
		if err := server.Start(":" + cfg.Port); err != nil {
			log.Fatalf(i18n.Get("APIServerError"), err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println(i18n.Get("ShuttingDown"))
}

func seedCategories(ctx context.Context, database *db.Database, path string) error {
	configs, err := categories.Load(path)
	if err != nil {
		return err
	}
	userIDs, err := database.ListUserIDs(ctx)
	if err != nil {
		return err
	}
	for _, uid := range userIDs {
		if err := categories.SyncToDB(ctx, database.DB, uid, configs); err != nil {
			return err
		}
	}
	log.Printf(i18n.Get("CategorySeedDone"), len(configs))
	return nil
}
