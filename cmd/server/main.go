package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucylllllz/CALLME-Project/internal/config"
	"github.com/lucylllllz/CALLME-Project/internal/database"
	"github.com/lucylllllz/CALLME-Project/internal/handlers"
	"github.com/lucylllllz/CALLME-Project/internal/repository"
	"github.com/lucylllllz/CALLME-Project/internal/router"
	"github.com/lucylllllz/CALLME-Project/internal/services"
)

func main() {
	log.Println("🚀 Starting CallMe Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠ OPENAI_API_KEY is not set; transcription and chat routes will return 500")
	}

	// ──── Step 2: Choose History Store ────
	var historyRepo repository.HistoryRepo
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		historyRepo = repository.NewRedisHistoryRepo(redisClient, cfg.HistoryLimit)
		log.Println("✓ Redis history store connected")
	} else {
		historyRepo = repository.NewMemoryHistoryRepo(cfg.HistoryLimit)
		log.Println("✓ In-memory history store initialized (REDIS_URL not set)")
	}

	// ──── Step 3: Initialize Provider Adapters ────
	enrichTimeout := time.Duration(cfg.EnrichTimeout) * time.Second
	chatTimeout := time.Duration(cfg.ChatTimeout) * time.Second

	transcriptionService := services.NewTranscriptionService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel, chatTimeout)
	gpuClient := services.NewGPUClient(cfg.GPUBackendURL, enrichTimeout)
	chatService := services.NewChatService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, chatTimeout)
	orchestrator := services.NewOrchestrator(gpuClient, gpuClient, chatService)
	log.Println("✓ Provider adapters initialized")

	// ──── Step 4: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(orchestrator)
	transcribeHandler := handlers.NewTranscribeHandler(transcriptionService)
	enrichmentHandler := handlers.NewEnrichmentHandler(gpuClient, gpuClient)
	historyHandler := handlers.NewHistoryHandler(historyRepo)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(chatHandler, transcribeHandler, enrichmentHandler, historyHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ CallMe Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
