package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/db"
	"portfolio-chat/internal/domain"
	apihttp "portfolio-chat/internal/http"
	"portfolio-chat/internal/llm"
	"portfolio-chat/internal/repository"
	"portfolio-chat/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	contentRepo, closeContent, err := openContentRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("content repository", zap.Error(err))
	}
	defer closeContent()

	persona := personaFromConfig(cfg)
	contentSvc := service.NewContentService(contentRepo, cfg.FeaturedProjects, cfg.MCPProjects)
	prompt, err := contentSvc.PromptContext(ctx, persona)
	if err != nil {
		logger.Fatal("assemble prompt", zap.Error(err))
	}
	logger.Info("prompt assembled", zap.Int("instructions_bytes", len(prompt.Instructions)))

	geminiClient := llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, &http.Client{}, logger)
	var completionClient llm.CompletionClient = geminiClient

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, completion cache disabled", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}
	if redisClient != nil {
		defer redisClient.Close()
		completionClient = llm.NewCachedClient(completionClient, redisClient, geminiClient.Model(), cfg.CompletionCacheTTL, logger)
	}

	sessionSvc := service.NewSessionService(logger, prompt, completionClient, cfg.CompletionTimeout, cfg.SessionIdleTTL)
	sessionSvc.StartJanitor(ctx, cfg.SessionSweepPeriod)

	chatHandler := apihttp.NewChatHandler(logger, sessionSvc)
	contentHandler := apihttp.NewContentHandler(logger, contentSvc, cfg.OwnerHandle)
	router := apihttp.NewRouter(logger, cfg.CORSAllowedOrigins, chatHandler, contentHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("model", geminiClient.Model()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	// Deja terminar las completions en vuelo hasta el timeout configurado.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.CompletionTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

// openContentRepository usa Postgres si hay CONTENT_DATABASE_URL y si no los archivos JSON.
func openContentRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.ContentRepository, func(), error) {
	if cfg.ContentDatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.ContentDatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("content source: postgres")
		return repository.NewPgContentRepository(pool), pool.Close, nil
	}

	repo, err := repository.NewJSONContentRepository(cfg.ProjectsPath, cfg.ExperiencePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("content source: json",
		zap.String("projects", cfg.ProjectsPath),
		zap.String("experience", cfg.ExperiencePath),
	)
	return repo, func() {}, nil
}

func personaFromConfig(cfg *config.Config) domain.Persona {
	return domain.Persona{
		Name:         cfg.OwnerName,
		Handle:       cfg.OwnerHandle,
		Role:         cfg.OwnerRole,
		Skills:       cfg.OwnerSkills,
		ContactEmail: cfg.ContactEmail,
	}
}
