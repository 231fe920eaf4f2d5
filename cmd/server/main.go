package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stackit/internal/api"
	"stackit/internal/app/service"
	"stackit/internal/common/security"
	"stackit/internal/domain/repository"
	"stackit/internal/platform/config"
	"stackit/internal/platform/counter"
	"stackit/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Stores
	var userRepo repository.UserRepository
	var questionRepo repository.QuestionRepository
	if config.AppConfig.StoreDriver == "postgres" {
		database.Connect()
		defer database.Close()
		userRepo = repository.NewPgUserRepository(database.DB)
		questionRepo = repository.NewPgQuestionRepository(database.DB)
	} else {
		// Seeded demo store. Writes never reach it: created questions and
		// registered users live only in their own responses.
		userRepo = repository.NewMemoryUserRepository(repository.SeedUsers())
		questionRepo = repository.NewMemoryQuestionRepository(repository.SeedQuestions(), repository.SeedAnswers())
	}
	log.Printf("Store initialized (driver=%s).", config.AppConfig.StoreDriver)

	// 4. Initialize View Counter
	views := counter.NewMemoryViewCounter()
	if config.AppConfig.RedisAddr != "" {
		views = counter.NewRedisViewCounter()
	}

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo)
	questionService := service.NewQuestionService(questionRepo, views)
	answerService := service.NewAnswerService(questionRepo)

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(authService, questionService, answerService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
