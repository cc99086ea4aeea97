package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"diagbot/internal/bot"
	"diagbot/internal/config"
	"diagbot/internal/repository"
	"diagbot/internal/service"
	"diagbot/internal/store"
	"diagbot/internal/telegram"
	"diagbot/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	// Session store: Redis when configured, in-memory otherwise.
	var sessions store.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
		sessions = store.NewRedisStore(rdb)
	} else {
		log.Println("Warning: REDIS_ADDR not set, using in-memory sessions")
		sessions = store.NewMemoryStore()
	}

	// Archive repository: optional.
	var archive repository.ArchiveRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")
		archive = repository.NewArchiveRepo(mongoClient.Database("diagnostics"))
	} else {
		log.Println("Warning: MONGO_URI not set, archive persistence disabled")
	}

	tg := telegram.NewClient(cfg.TelegramToken)
	analyzer := service.NewAnalysisService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	reports := service.NewReportService(cfg.PDFFontPath)
	sheets := service.NewSheetsService(cfg.GASEndpoint, archive)

	flow := bot.NewFlow(sessions, tg, analyzer, reports, sheets, cfg.ConsultationURL)
	defer flow.Shutdown()

	router := rest.NewRouter(&rest.Container{
		Flow:          flow,
		WebhookSecret: cfg.TelegramSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /webhook")
		log.Println("  GET  /health")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
