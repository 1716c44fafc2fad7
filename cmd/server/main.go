package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/seyitm/baby-ai/internal"
	"github.com/seyitm/baby-ai/internal/api"
	"github.com/seyitm/baby-ai/internal/auth"
	"github.com/seyitm/baby-ai/internal/cache"
	"github.com/seyitm/baby-ai/internal/config"
	"github.com/seyitm/baby-ai/internal/llm"
	"github.com/seyitm/baby-ai/internal/report"
	"github.com/seyitm/baby-ai/internal/service"
	"github.com/seyitm/baby-ai/internal/storage"
)

type app struct {
	logger  internal.Logger
	cfg     *config.Config
	chat    *service.ChatService
	records *storage.CachedRecordAccessor
}

func (a *app) Logger() internal.Logger                { return a.logger }
func (a *app) Config() *config.Config                 { return a.cfg }
func (a *app) Chat() *service.ChatService             { return a.chat }
func (a *app) Records() *storage.CachedRecordAccessor { return a.records }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var repos storage.Repositories
	switch cfg.StorageBackend {
	case "postgres":
		repos, err = storage.NewPostgresRepositories(cfg.PostgresDSN, logger)
		if err != nil {
			logger.Fatalf("failed to init postgres storage: %v", err)
		}
	default:
		repos = storage.NewSupabaseRepositories(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	}

	recordCache := cache.NewRecordCache(cfg.ContextCacheTTL)
	accessor := storage.NewCachedRecordAccessor(repos.Records, recordCache, logger)
	assembler := report.NewAssembler(accessor, logger, cfg.MaxItemsPerCategory, true)

	client := llm.NewOpenAIClient(
		cfg.ModelAPIKey,
		cfg.ModelBaseURL,
		cfg.ModelName,
		cfg.ModelMaxTokens,
		cfg.ModelTemperature,
	)

	chatService := service.NewChatService(
		repos.Babies,
		repos.History,
		assembler,
		client,
		logger,
		cfg.MaxHistoryMessages,
	)

	a := &app{logger: logger, cfg: cfg, chat: chatService, records: accessor}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.JWTSecret, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthEndpoint, cfg.SupabaseKey, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(api.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/", api.Root())

	protected := r.Group("/")
	protected.Use(auth.Middleware(provider, cfg))
	protected.POST("/chat", api.PostChat(a))
	protected.GET("/report", api.GetReport(a))

	logger.Infof("server running on :%s (backend=%s)", cfg.Port, cfg.StorageBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
