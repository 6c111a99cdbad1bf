package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"rankings-admin/pkg/config"
	"rankings-admin/pkg/database"
	"rankings-admin/pkg/logger"
	"rankings-admin/pkg/slug"
	"rankings-admin/services/ranking/internal/model"
	"rankings-admin/services/ranking/internal/repo/persistent"
)

func main() {
	var (
		source      string
		autoMigrate bool
	)
	flag.StringVar(&source, "source", "", "JSON file or URL to import (defaults to RANKINGS_JSON_PATH)")
	flag.BoolVar(&autoMigrate, "automigrate", false, "create tables with gorm before seeding (SQLite dev databases)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if source == "" {
		source = cfg.RankingsJSONPath
	}

	log := logger.New()
	defer func() { _ = log.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer func() { _ = database.Close(db) }()

	if autoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	doc, err := persistent.NewJSONSource(source).Load(ctx)
	if err != nil {
		log.Error("Failed to read %s: %v", source, err)
		panic(err)
	}

	result, err := persistent.Seed(ctx, db, doc, slug.MustNewGenerator(), time.Now())
	if err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Seeded %d rankings and %d items from %s (%d skipped)", result.Rankings, result.Items, source, result.Skipped)
}
