package main

import (
	"log"

	api "mailrag-backend/cmd/api"
	authdomain "mailrag-backend/internal/auth/domain"
	authRepo "mailrag-backend/internal/auth/repository"
	emailRepo "mailrag-backend/internal/email/repository"
	emailUsecase "mailrag-backend/internal/email/usecase"
	"mailrag-backend/pkg/ai"
	"mailrag-backend/pkg/config"
	"mailrag-backend/pkg/database"
	"mailrag-backend/pkg/embed"
	"mailrag-backend/pkg/gmail"
	"mailrag-backend/pkg/imap"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize credential database
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis corpus cache
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL:", err)
	}
	rdb := redis.NewClient(redisOpts)

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	corpusRepo := emailRepo.NewCorpusRepository(rdb)

	// Initialize mail providers
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	imapService := imap.NewService()

	// Initialize embedding service
	embedder, err := embed.NewGeminiEmbedder(cfg.GeminiApiKey, cfg.EmbeddingModel)
	if err != nil {
		log.Fatal("Failed to initialize embedder:", err)
	}

	// Initialize answer generation service
	params := ai.DefaultGenerationParams()
	params.MaxTokens = cfg.AnswerMaxTokens
	answerService, err := ai.NewAnswerService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
		Params:        params,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize use case (dependency injection)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(corpusRepo, userRepo, gmailService, imapService, embedder, answerService, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(emailUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
