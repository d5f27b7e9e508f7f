package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/database"
	"mealplan-assistant/internal/llm"
	"mealplan-assistant/internal/metrics"
	"mealplan-assistant/internal/planner"
	"mealplan-assistant/internal/telegram"
	"mealplan-assistant/internal/web"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Select the LLM provider once for the process lifetime. The server
	// still starts without one; plan requests then report the failure.
	session, err := llm.NewSession(ctx, cfg)
	if err != nil {
		log.Printf("Starting without an LLM provider: %v", err)
	}
	defer session.Close()

	// 3. Initialize the SQLite database and metrics store
	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)
	planRepo := planner.NewPlanRepository(db.SQL)

	// 4. Initialize Services
	mealPlanner := planner.NewPlanner(session)

	mux := http.NewServeMux()
	web.NewServer(mealPlanner, metricsStore, planRepo).RegisterHandlers(mux)

	// 5. Attach the Telegram bot webhook when configured
	if cfg.TelegramBotToken != "" && cfg.TelegramWebhookURL != "" {
		bot, err := telegram.NewBot(cfg, mealPlanner, metricsStore, planRepo)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram Bot: %v", err)
		}
		bot.RegisterHandlers(mux)
	}

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("Meal planner server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
