// @title         Ice Breaker Generator API
// @version       1.0
// @description   Сервис генерирует персональные ice breakers по имени человека: ищет его профили в сети, разбирает их с помощью LLM и пишет вопросы для начала разговора.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен клиента API. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/icebreaker/docs"

	// internal imports
	apihttp "github.com/artem13815/icebreaker/api/http"
	"github.com/artem13815/icebreaker/api/http/handlers"
	"github.com/artem13815/icebreaker/pkg/agent"
	"github.com/artem13815/icebreaker/pkg/config"
	"github.com/artem13815/icebreaker/pkg/health"
	"github.com/artem13815/icebreaker/pkg/health/checkers"
	"github.com/artem13815/icebreaker/pkg/jobs"
	"github.com/artem13815/icebreaker/pkg/llm"
	"github.com/artem13815/icebreaker/pkg/llm/claude"
	"github.com/artem13815/icebreaker/pkg/llm/openrouter"
	"github.com/artem13815/icebreaker/pkg/logging"
	"github.com/artem13815/icebreaker/pkg/profile"
	"github.com/artem13815/icebreaker/pkg/scraper"
	"github.com/artem13815/icebreaker/pkg/search"
	"github.com/artem13815/icebreaker/pkg/security/jwt"
)

const openAIBaseURL = "https://api.openai.com/v1"

func main() {
	// Load configuration from env/.env and CONFIG_FILE
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Capabilities: LLM, search, scraper
	model := newChatModel(cfg)
	if cfg.LLM.APIKey == "" {
		logger.Warn("LLM_API_KEY is empty: every request will get fallback ice breakers")
	}
	searcher, err := search.New(search.Config{
		Backend: search.Backend(cfg.SearchBackend()),
		APIKey:  searchKey(cfg),
		CSEID:   cfg.Search.GoogleCSEID,
		Timeout: config.Seconds(cfg.RequestTimeout),
	}, logger)
	if err != nil {
		log.Fatalf("search: %v", err)
	}
	if cfg.SearchBackend() == config.SearchNone {
		logger.Warn("no search backend configured: set SERP_API_KEY or GOOGLE_API_KEY with GOOGLE_CSE_ID")
	}
	scr := scraper.New(scraper.Config{UserAgent: cfg.UserAgent, Timeout: config.Seconds(cfg.RequestTimeout)}, logger)

	// Pipeline (Clean Architecture: use cases get interfaces)
	profiles := profile.NewService(model, logger)
	loop := agent.NewLoop(
		agent.NewLLMDecider(model),
		agent.Tools{Search: searcher, Scraper: scr, Profiles: profiles},
		agent.Limits{MaxIterations: cfg.MaxIterations, MaxExecutionTime: config.Seconds(cfg.MaxExecutionTime)},
		logger,
	)
	pipeline := agent.NewService(loop, agent.NewSynthesizer(model, logger), logger)

	// Result cache: redis when configured, otherwise in-process
	retention := config.Seconds(cfg.Jobs.ResultRetention)
	readinessChecks := []health.Checker{checkers.NewLLMKeyChecker(cfg.LLM.Provider, cfg.LLM.APIKey)}
	var store jobs.Store
	if cfg.Jobs.RedisURL != "" {
		rdb, err := jobs.NewRedisClient(ctx, cfg.Jobs.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = jobs.NewRedisStore(rdb, retention)
		readinessChecks = append(readinessChecks, checkers.NewRedisChecker(rdb))
	} else {
		store = jobs.NewMemoryStore(retention)
	}

	runner := jobs.NewRunner(store, pipeline, jobs.RunnerConfig{
		Workers:   cfg.Jobs.Workers,
		QueueSize: cfg.Jobs.QueueSize,
		Retention: retention,
		Deadline:  config.Seconds(cfg.RequestDeadline),
	}, logger)
	runner.Start(ctx)
	defer runner.Stop()

	reaper := jobs.NewReaper(store, cfg.Jobs.ReapInterval, logger)
	if err := reaper.Start(ctx); err != nil {
		log.Fatalf("reaper: %v", err)
	}
	defer reaper.Stop()

	// HTTP
	app := fiber.New(fiber.Config{
		AppName:      "icebreaker",
		ErrorHandler: apihttp.ErrorHandler(logger),
		ReadTimeout:  30 * time.Second,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Debug}))
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(apihttp.AccessLog(logger))

	healthHandler := handlers.NewHealthHandler(health.NewService(readinessChecks...))
	iceHandler := handlers.NewIceBreakerHandler(pipeline, runner, config.Seconds(cfg.RequestDeadline), logger)

	// JWT guard only when a secret is configured
	var authMW fiber.Handler
	if cfg.JWT.Secret != "" {
		authMW = jwt.NewAuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer)
	}
	apihttp.Register(app, healthHandler, iceHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("http shutdown", "error", err)
		}
	}()

	logger.Info("HTTP server listening", "addr", cfg.Addr(), "llm", cfg.LLM.Provider, "search", cfg.SearchBackend())
	if err := app.Listen(cfg.Addr()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "error", err)
	}
}

// newChatModel picks the LLM provider.
func newChatModel(cfg config.Config) llm.ChatModel {
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic:
		return claude.New(claude.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.APIURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	case config.ProviderOpenAI:
		base := cfg.LLM.APIURL
		if base == "" {
			base = openAIBaseURL
		}
		model := cfg.LLM.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return openrouter.New(openrouter.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     base,
			Model:       model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	default:
		return openrouter.New(openrouter.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.APIURL,
			Model:       cfg.LLM.Model,
			AppTitle:    cfg.LLM.AppTitle,
			Referer:     cfg.LLM.Referer,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	}
}

func searchKey(cfg config.Config) string {
	if cfg.SearchBackend() == config.SearchGoogleCSE {
		return cfg.Search.GoogleAPIKey
	}
	return cfg.Search.SerpAPIKey
}
