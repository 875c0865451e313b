package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grammar-backend/internal/grammar"
	"grammar-backend/internal/grammar/aicheck"
	"grammar-backend/internal/grammar/languagetool"
	"grammar-backend/internal/llm/openai"
	"grammar-backend/internal/services/health"
	"grammar-backend/internal/shared/config"
	"grammar-backend/internal/shared/server"
	"grammar-backend/internal/shared/storage/db"
	"grammar-backend/internal/shared/telemetry"
)

const languageToolTimeout = 30 * time.Second

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Repo           grammar.Repo
	GrammarService *grammar.Service
	GrammarHandler *grammar.Handler
	Health         *health.Service
}

// Build connects storage, constructs the checkers and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := BuildService(cfg, sqlDB)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		Repo:           svc.Repo,
		GrammarService: svc,
		GrammarHandler: grammar.NewHandler(svc),
	}
	if sqlDB != nil {
		app.Health = health.NewService(sqlDB, svc.GenerativeEnabled())
	} else {
		app.Health = health.NewService(nil, svc.GenerativeEnabled())
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		GrammarHandler: app.GrammarHandler,
		Health:         app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"storage":    storageName(sqlDB),
		"generative": svc.GenerativeEnabled(),
	})
	return app, nil
}

// BuildService constructs the grammar service. A nil database selects the
// in-memory repository.
func BuildService(cfg config.Config, sqlDB *sql.DB) (*grammar.Service, error) {
	var repo grammar.Repo
	if sqlDB != nil {
		repo = &grammar.PGRepo{DB: sqlDB}
	} else {
		repo = grammar.NewMemoryRepo()
	}

	ltClient := languagetool.NewClient(cfg.LanguageToolURL, &http.Client{Timeout: languageToolTimeout})
	svc := &grammar.Service{
		Rules: languagetool.NewChecker(ltClient),
		Repo:  repo,
	}

	if cfg.GenerativeEnabled() {
		completer, err := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build generative checker: %w", err)
		}
		svc.Generative = aicheck.NewChecker(completer)
	}
	return svc, nil
}

// Close waits for pending writes and releases the database.
func (a *App) Close() error {
	if a.GrammarService != nil {
		a.GrammarService.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil && !db.IsLambdaRuntime() {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func storageName(sqlDB *sql.DB) string {
	if sqlDB == nil {
		return "memory"
	}
	return "postgres"
}
