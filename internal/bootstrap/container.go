package bootstrap

import (
	"context"
	"log"
	"time"

	"po-intake-be/internal/config"
	"po-intake-be/internal/controller"
	"po-intake-be/internal/handler"
	"po-intake-be/internal/pkg/logger"
	"po-intake-be/internal/pkg/mailer"
	"po-intake-be/internal/repository/implementation"
	"po-intake-be/internal/repository/memory"
	"po-intake-be/internal/service"
	"po-intake-be/internal/websocket"
	"po-intake-be/pkg/doccheck"
	pktNats "po-intake-be/pkg/nats"
	"po-intake-be/pkg/storage"
	"po-intake-be/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IntakeController controller.IIntakeController
	RecordController controller.IRecordController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Blob storage
	uploader, err := storage.NewAzureUploader(
		cfg.Storage.AccountURL,
		cfg.Storage.SASToken,
		cfg.Storage.Container,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob storage client: %v", err)
	}

	// Workflow engine
	notifier := workflow.NewHTTPNotifier(
		cfg.Workflow.EndpointURL,
		time.Duration(cfg.Workflow.TimeoutSeconds)*time.Second,
	)

	// 3. Repositories
	recordRepo := implementation.NewDocumentRecordRepository(db)
	submissionStore := memory.NewSubmissionStore(
		time.Duration(cfg.Intake.SessionTTLMinutes) * time.Minute,
	)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Intake.CompletedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Intake.CompletedTopic,
		emailService,
	)

	uploadTimeout := time.Duration(cfg.Intake.UploadTimeoutSeconds) * time.Second
	orchestrator := service.NewUploadOrchestrator(
		uploader,
		notifier,
		recordRepo,
		sysLogger,
		uploadTimeout,
	)

	var eventBus service.EventPublisher
	if natsPub != nil {
		eventBus = natsPub
	}

	intakeService := service.NewIntakeService(
		submissionStore,
		doccheck.NewSpreadsheetValidator(doccheck.DefaultSpreadsheetTemplate),
		doccheck.NewPDFValidator(doccheck.DefaultPDFTemplate),
		uploader,
		orchestrator,
		publisherService,
		eventBus,
		wsHub,
		sysLogger,
		uploadTimeout,
		int64(cfg.Intake.MaxMaterialSizeMB)*1024*1024,
	)
	recordService := service.NewRecordService(recordRepo)

	// 5. Controllers
	return &Container{
		IntakeController: controller.NewIntakeController(intakeService),
		RecordController: controller.NewRecordController(recordService),

		ConsumerService: consumerService,
		ProgressHandler: handler.NewProgressHandler(wsHub, wsLogger),
		WebSocketHub:    wsHub,
	}
}
