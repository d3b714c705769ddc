// Command aivad runs the Aiva assistant gateway.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	aiva "github.com/aivrasol/aiva"
	"github.com/aivrasol/aiva/content/redisstore"
	"github.com/aivrasol/aiva/gemini"
	"github.com/aivrasol/aiva/internal/config"
	"github.com/aivrasol/aiva/longcat"
	"github.com/aivrasol/aiva/server"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	for _, key := range cfg.MissingKeys() {
		log.Printf("[ERROR] %s is not set in environment variables", key)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis unreachable, assistant will answer without site content: %v", err)
	}

	var provider aiva.ChatProvider
	switch cfg.Provider {
	case config.ProviderGemini:
		provider = gemini.New(gemini.Options{
			URL:    cfg.GeminiAPIURL,
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
	default:
		provider = longcat.New(longcat.Options{
			URL:    cfg.LongCatAPIURL,
			APIKey: cfg.LongCatAPIKey,
			Model:  cfg.LongCatModel,
		})
	}

	svc := server.New(redisstore.New(rdb), provider)
	if err := svc.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
