package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	GeoapifyAPIKey string

	LLMProvider  string // openai or gemini
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID    string
	SupabaseJWTSecret string

	StripeSecretKey string

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		GeoapifyAPIKey: os.Getenv("GEOAPIFY_API_KEY"),

		LLMProvider:  getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:  getEnv("SENDGRID_FROM_NAME", "Smart Parking"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
