package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI-compatible provider (transcription + chat)
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	ChatModel       string
	TranscribeModel string

	// GPU enrichment provider (fluency + sketch conversion)
	GPUBackendURL string

	// Redis (optional; in-memory history store is used when unset)
	RedisURL string

	// Timeouts (seconds)
	EnrichTimeout int
	ChatTimeout   int

	// History
	HistoryLimit int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),

		// The API key is intentionally not required at startup: a missing
		// credential surfaces as a 500 on the routes that need it.
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com"),
		ChatModel:       getEnvOrDefault("CHAT_MODEL", "gpt-5-nano"),
		TranscribeModel: getEnvOrDefault("TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe"),

		GPUBackendURL: getEnvOrDefault("GPU_BACKEND_URL", "http://localhost:7777"),

		RedisURL: os.Getenv("REDIS_URL"),

		EnrichTimeout: getEnvAsIntOrDefault("ENRICH_TIMEOUT_SECONDS", 15),
		ChatTimeout:   getEnvAsIntOrDefault("CHAT_TIMEOUT_SECONDS", 60),

		HistoryLimit: getEnvAsIntOrDefault("HISTORY_LIMIT", 100),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
