package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/db"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/repository"
)

// content_sync aplica las migraciones y publica repos.json/experience.json en Postgres.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadContentSyncConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	source, err := repository.NewJSONContentRepository(cfg.ProjectsPath, cfg.ExperiencePath)
	if err != nil {
		logger.Fatal("load content", zap.Error(err))
	}
	projects, experience, err := readContent(ctx, source)
	if err != nil {
		logger.Fatal("read content", zap.Error(err))
	}

	pool, err := db.NewWritablePool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.NewPgContentWriter(pool).ReplaceContent(ctx, projects, experience); err != nil {
		logger.Fatal("replace content", zap.Error(err))
	}
	logger.Info("content published",
		zap.Int("projects", len(projects)),
		zap.Int("experience", len(experience)),
	)
}

func readContent(ctx context.Context, source repository.ContentRepository) ([]domain.Project, []domain.Experience, error) {
	projects, err := source.ListProjects(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list projects: %w", err)
	}
	experience, err := source.ListExperience(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list experience: %w", err)
	}
	return projects, experience, nil
}
