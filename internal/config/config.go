// Package config loads all service configuration from the environment once,
// at startup. Nothing else in the codebase reads env vars directly.
package config

import "os"

type Config struct {
	Port string

	// Postgres. Empty means the in-memory store is used.
	DatabaseURL string

	// WhatsApp Cloud API. Both must be set for outbound sends to work.
	WhatsAppToken   string
	WhatsAppPhoneID string
	VerifyToken     string
	GraphBaseURL    string

	// Generation service. Empty key disables model-backed replies.
	OpenAIKey   string
	OpenAIModel string
}

func Load() Config {
	return Config{
		Port:            envOr("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneID: os.Getenv("WHATSAPP_PHONE_ID"),
		VerifyToken:     envOr("VERIFY_TOKEN", "my_verify_token"),
		GraphBaseURL:    os.Getenv("GRAPH_BASE_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
