package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"job_board_service/internal/chat/api/handlers"
	"job_board_service/internal/chat/app"
	"job_board_service/internal/chat/repository"
	"job_board_service/internal/chat/router"
	"job_board_service/pkg/config"
	"job_board_service/pkg/database"
	"job_board_service/pkg/logger"

	_ "job_board_service/docs"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	ctx := context.Background()

	// message store
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d",
		cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    mongoURI,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", mongoURI)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	if err := repository.EnsureConversationIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal("Unable to ensure conversation indexes", zap.Error(err))
	}

	// party directory and job catalog
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Database)
	pgConn := database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.Postgres.RetryCount,
		RetryInterval: time.Duration(cfg.Postgres.RetryInterval),
	}
	pool, err := database.NewDatabaseConnection(pgConn)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", pgURI)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	gormDB, err := database.NewGormConnection(pgConn)
	if err != nil {
		logger.Log.Fatal("Unable to open gorm connection after retries", zap.Error(err))
	}

	// rate limiting
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// analytics events; the service runs without them when kafka is down
	var events repository.EventPublisher
	writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Warn("kafka unavailable, message events disabled", zap.Error(err))
	} else {
		defer writer.Close()
		events = repository.NewKafkaEventPublisher(writer)
	}

	convRepo := repository.NewMongoConversationRepository(mongo.Database)
	directory := repository.NewDirectoryRepository(pool)
	catalog := repository.NewCatalogRepository(gormDB)
	limiter := repository.NewRateLimitRepository(redisClient)

	if err := catalog.AutoMigrate(); err != nil {
		logger.Log.Fatal("Unable to migrate catalog tables", zap.Error(err))
	}

	messageUC := app.NewMessageUseCase(convRepo, directory, catalog, events)
	notificationUC := app.NewNotificationUseCase(convRepo, directory, catalog)

	registry := app.NewSessionRegistry()
	hub := app.NewRoomHub()
	sendWindow := time.Duration(cfg.SendLimitWindow) * time.Second
	chatWebsocket := app.NewChatWebsocketHandler(
		messageUC, notificationUC, registry, hub,
		limiter, cfg.SendLimit, sendWindow,
	)
	chatHandler := handlers.NewChatHandler(messageUC, notificationUC)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, chatWebsocket, chatHandler, limiter, cfg.SendLimit, sendWindow)

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
