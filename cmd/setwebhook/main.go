// Command setwebhook registers (or removes) the bot's webhook URL with the
// Telegram Bot API.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"diagbot/internal/config"
	"diagbot/internal/telegram"
)

func main() {
	remove := flag.Bool("delete", false, "delete the webhook instead of setting it")
	url := flag.String("url", "", "webhook URL (defaults to WEBHOOK_URL)")
	flag.Parse()

	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	client := telegram.NewClient(cfg.TelegramToken)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *remove {
		if err := client.DeleteWebhook(ctx); err != nil {
			log.Fatal("Failed to delete webhook:", err)
		}
		log.Println("Webhook deleted")
		return
	}

	target := *url
	if target == "" {
		target = cfg.WebhookURL
	}
	if target == "" {
		log.Fatal("webhook URL is not set (use -url or WEBHOOK_URL)")
	}

	if err := client.SetWebhook(ctx, target, cfg.TelegramSecret); err != nil {
		log.Fatal("Failed to set webhook:", err)
	}
	log.Printf("Webhook set to %s", target)
}
