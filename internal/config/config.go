package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Sweep    SweepConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	Provider         string // "openrouter" or "ollama"
	Model            string
	OpenRouterAPIKey string
	OpenRouterURL    string
	// Referer and AppTitle feed the OpenRouter attribution headers.
	Referer       string
	AppTitle      string
	OllamaBaseURL string
}

type SweepConfig struct {
	// Secret guards the reminder sweep endpoint. Empty disables the check
	// (local development only).
	Secret string
	// DelayMs paces outbound reminders so the SMTP relay is not hammered.
	DelayMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "BNJ Teammaker RH"),
		},
		Ai: AIConfig{
			Provider:         getEnv("LLM_PROVIDER", "openrouter"),
			Model:            getEnv("LLM_MODEL", "google/gemini-2.5-flash-lite"),
			OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterURL:    getEnv("OPENROUTER_BASE_URL", ""),
			Referer:          getEnv("OPENROUTER_REFERER", "http://localhost:3000"),
			AppTitle:         getEnv("OPENROUTER_APP_TITLE", "BNJ Teammaker"),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Sweep: SweepConfig{
			Secret:  getEnv("SWEEP_SECRET", ""),
			DelayMs: getEnvAsInt("SWEEP_DELAY_MS", 1000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
