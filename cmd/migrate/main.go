package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iac-studio/projects/internal/repository"
	"github.com/iac-studio/projects/pkg/config"
	"github.com/iac-studio/projects/pkg/database"
	"github.com/iac-studio/projects/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	seedPath := flag.String("seed", "", "optional JSON file of projects to insert into an empty table")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, zap.String("env", cfg.AppEnv))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL, true)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := runMigrations(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if *seedPath != "" {
		f, err := os.Open(*seedPath)
		if err != nil {
			log.Fatal("open seed file", zap.Error(err))
		}
		defer f.Close()
		n, err := seedProjects(ctx, repository.NewProjectRepository(db), f)
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("seed completed", zap.Int("inserted", n))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
