package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup from the environment.
type Config struct {
	TelegramToken  string
	TelegramSecret string

	OpenAIAPIKey string
	OpenAIModel  string

	RedisAddr string // empty: in-memory session store
	MongoURI  string // empty: no archive persistence

	GASEndpoint     string
	ConsultationURL string
	WebhookURL      string
	PDFFontPath     string
	HTTPPort        string
}

// Load reads the configuration, preferring a local .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramSecret:  os.Getenv("TELEGRAM_SECRET_TOKEN"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		MongoURI:        os.Getenv("MONGO_URI"),
		GASEndpoint:     os.Getenv("GAS_ENDPOINT"),
		ConsultationURL: os.Getenv("CONSULTATION_URL"),
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
		PDFFontPath:     os.Getenv("PDF_FONT_PATH"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
