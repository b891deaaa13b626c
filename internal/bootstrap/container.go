package bootstrap

import (
	"log"

	"ai-boardroom-be/internal/config"
	"ai-boardroom-be/internal/controller"
	"ai-boardroom-be/internal/handler"
	"ai-boardroom-be/internal/pkg/logger"
	"ai-boardroom-be/internal/pkg/mailer"
	"ai-boardroom-be/internal/repository/implementation"
	"ai-boardroom-be/internal/repository/memory"
	"ai-boardroom-be/internal/repository/unitofwork"
	"ai-boardroom-be/internal/service"
	"ai-boardroom-be/pkg/llm/factory"

	pktNats "ai-boardroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	UserController      controller.IUserController
	ProblemController   controller.IProblemController
	BoardroomController controller.IBoardroomController

	// Notification
	NotificationHandler *handler.NotificationHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
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

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HFAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory runtime state for active sessions
	runtimeRepo := memory.NewRuntimeStateRepository()

	// 4. Services
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.SummaryTopic,
		uowFactory,
		llmProvider,
	)

	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	problemService := service.NewProblemService(uowFactory)

	boardroomService := service.NewBoardroomService(
		uowFactory,
		llmProvider,
		runtimeRepo,
		natsPub,
		pubSub,
		cfg.App.SummaryTopic,
	)

	// 5. Notification System
	notifLogger := logger.NewIsolatedLogger("logs/notification.log")
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, notifLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, sysLogger)

	sysLogger.Info("Bootstrap", "Container wired", map[string]interface{}{
		"llm_provider":  cfg.Ai.LLMProvider,
		"summary_topic": cfg.App.SummaryTopic,
	})

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		UserController:      controller.NewUserController(userService),
		ProblemController:   controller.NewProblemController(problemService),
		BoardroomController: controller.NewBoardroomController(boardroomService),

		NotificationHandler: notifHandler,

		ConsumerService: consumerService,
	}
}
