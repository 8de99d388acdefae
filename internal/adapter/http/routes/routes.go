package routes

import (
	"strconv"

	"manutencao_xpto/internal/adapter/http/handlers"
	"manutencao_xpto/internal/adapter/http/middleware"
	"manutencao_xpto/internal/adapter/persistence/repository"
	"manutencao_xpto/internal/infrastructure/auth"
	"manutencao_xpto/internal/infrastructure/config"
	"manutencao_xpto/internal/infrastructure/database"
	"manutencao_xpto/internal/infrastructure/notifications"
	"manutencao_xpto/internal/infrastructure/storage"
	"manutencao_xpto/internal/usecase"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(cfg)

	port := cfg.ServicePort
	if port == 0 {
		port = defaultPort
	}
	if err := router.Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatalf("failed to startup the application: %v", err.Error())
	}
}

func getRoutes(cfg *config.Config) {
	ddb := database.ConnectDynamoDB()

	requestRepo := repository.NewRequestDynamoRepository(ddb)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	workOrderRepo := repository.NewWorkOrderDynamoRepository(ddb)
	taskRepo := repository.NewTaskDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)

	var notifier interfaces.ITransitionNotifier
	if cfg.Redis.Host != "" {
		notifier = notifications.NewRedisNotifier(cfg.Redis, "")
	}

	var attachmentStorage interfaces.IAttachmentStorage
	if cfg.Minio.Endpoint != "" {
		minioStorage, err := storage.NewMinioStorage(cfg.Minio)
		if err != nil {
			log.Fatalf("failed to connect attachment storage: %v", err)
		}
		attachmentStorage = minioStorage
	}

	requestUseCase := usecase.NewRequestUseCase(requestRepo, attachmentStorage, notifier)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, requestRepo, notifier)
	workOrderUseCase := usecase.NewWorkOrderUseCase(workOrderRepo, taskRepo, requestRepo, notifier)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, workOrderRepo, notifier)
	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, workOrderRepo, requestRepo, notifier)

	requestHandler := handlers.NewRequestHandler(requestUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderUseCase)
	taskHandler := handlers.NewTaskHandler(taskUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)

	var blacklist *auth.Blacklist
	if cfg.Redis.Host != "" {
		blacklist = auth.NewBlacklist(cfg.Redis)
	}
	authMiddleware := middleware.NewAuthMiddleware(blacklist, cfg.JWT)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMaintenanceRoutes(v1, authMiddleware, requestHandler, quoteHandler, workOrderHandler, taskHandler, invoiceHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorf("recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
