package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"techbot/internal/config"
	Iservices "techbot/internal/domain/interfaces/services"
	"techbot/internal/infra/cache"
	"techbot/internal/infra/handlers"
	"techbot/internal/infra/logger"
	"techbot/internal/infra/provider"
	"techbot/internal/infra/repository"
	"techbot/internal/infra/routes"
	"techbot/internal/infra/services"
	"techbot/internal/middleware"
	client "techbot/internal/pkg"
	"time"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	mongoClient := client.MongoClient()
	chatbotDB := mongoClient.Database(config.GetEnvOrDefault("MONGODB_DATABASE", "Techbot"))

	redisClient := client.RedisClient()
	defer redisClient.Close()

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	rateLimiter := middleware.NewRateLimiter(
		log,
		redisClient,
		time.Duration(config.GetEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60))*time.Second,
		config.GetEnvInt("RATE_LIMIT_QUOTA", 30),
	)
	router.Use(rateLimiter.Middleware())

	conversationRepo := repository.NewMongoConversationRepository(chatbotDB)
	docRepo := repository.NewMongoDocRepository(chatbotDB)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	geminiProvider := provider.NewGeminiProvider(log, httpClient)

	cacheCoordinator := cache.NewCoordinator(log, redisClient)

	var classifier Iservices.IClassifierService = services.NewClassifierService()
	var conversationSvc Iservices.IConversationService = services.NewConversationService(conversationRepo, log)
	var retrievalSvc Iservices.IRetrievalService = services.NewRetrievalService(
		log,
		cacheCoordinator,
		geminiProvider,
		docRepo,
		config.GetEnvInt("RETRIEVAL_TOP_K", 5),
		config.GetEnvInt("RETRIEVAL_CANDIDATE_POOL", 50),
	)
	var promptSvc Iservices.IPromptService = services.NewPromptService(config.GetEnv("BASE_INSTRUCTIONS"))
	var generationSvc Iservices.IGenerationService = services.NewGenerationService(log, geminiProvider)

	var chatService Iservices.IChatService = services.NewChatService(
		log,
		classifier,
		cacheCoordinator,
		retrievalSvc,
		promptSvc,
		generationSvc,
		conversationSvc,
		geminiProvider,
		docRepo,
		config.GetEnvInt("HISTORY_WINDOW", 6),
	)

	chatHandlers := handlers.NewHttpHandlers(log, chatService)

	routes := routes.NewRoutes(
		router,
		chatHandlers,
	)

	routes.Init()

	port := config.GetEnv("PORT")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}

	disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDisconnect()
	if err := mongoClient.Disconnect(disconnectCtx); err != nil {
		log.Error(fmt.Sprintf("Error disconnecting MongoDB: %v", err))
	}
}
