package bootstrap

import (
	"context"
	"log"
	"time"

	"ats-scheduler-be/internal/config"
	"ats-scheduler-be/internal/controller"
	"ats-scheduler-be/internal/handler"
	"ats-scheduler-be/internal/pkg/logger"
	"ats-scheduler-be/internal/pkg/mailer"
	"ats-scheduler-be/internal/repository/implementation"
	"ats-scheduler-be/internal/repository/memory"
	"ats-scheduler-be/internal/service"
	"ats-scheduler-be/internal/websocket"
	"ats-scheduler-be/pkg/extract"
	"ats-scheduler-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// contextCacheTTL bounds how stale the recent-candidates context injected
// into the assistant prompt may get.
const contextCacheTTL = 30 * time.Second

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DispatchController controller.IDispatchController
	StatusController   controller.IStatusController
	ConfirmController  controller.IConfirmController

	// Background Services (Exposed for main.go to run)
	NotifierService service.INotifierService

	// WebSockets
	DashboardHandler *handler.DashboardHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Ai.Provider,
		Model:         cfg.Ai.Model,
		APIKey:        cfg.Ai.OpenRouterAPIKey,
		BaseURL:       cfg.Ai.OpenRouterURL,
		Referer:       cfg.Ai.Referer,
		AppTitle:      cfg.Ai.AppTitle,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. Infrastructure
	// Redis is optional; without it the dashboard hub stays single-instance.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewZapLogger("logs/dashboard.log", cfg.App.Environment == "production")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Repositories
	outcomeRepo := implementation.NewOutcomeRepository(db)
	confirmationRepo := implementation.NewConfirmationRepository(db)
	contextCache := memory.NewContextCache(contextCacheTTL)

	// 6. Services
	dispatchService := service.NewDispatchService(
		llmProvider,
		emailService,
		outcomeRepo,
		confirmationRepo,
		contextCache,
		pubSub,
		sysLogger,
		cfg.App.BaseURL,
	)

	chatService := service.NewChatService(
		llmProvider,
		dispatchService,
		outcomeRepo,
		contextCache,
		extract.NewRegexExtractor(),
		sysLogger,
	)

	statusService := service.NewStatusService(
		outcomeRepo,
		confirmationRepo,
		dispatchService,
		contextCache,
		pubSub,
		sysLogger,
		time.Duration(cfg.Sweep.DelayMs)*time.Millisecond,
	)

	notifierService := service.NewNotifierService(pubSub, wsHub, wsLogger)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DispatchController: controller.NewDispatchController(dispatchService),
		StatusController:   controller.NewStatusController(statusService),
		ConfirmController:  controller.NewConfirmController(statusService, sysLogger),
		NotifierService:    notifierService,
		DashboardHandler:   handler.NewDashboardHandler(wsHub, wsLogger),
		WebSocketHub:       wsHub,
	}
}
