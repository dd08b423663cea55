package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	KosAPIURL    string
	MakerID      string
	RedisAddr    string
	CookieDomain string
	CookieSecure bool
	OTLPEndpoint string
	TracingOn    bool
}

func Load() *Config {
	// Local development keeps settings in a .env file; absence is fine.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("HTTP_PORT", "8080"),
		KosAPIURL:    getEnv("KOS_API_URL", "https://learn.smktelkom-mlg.sch.id/kos/api"),
		MakerID:      getEnv("MAKER_ID", "1"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "") == "true",
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		TracingOn:    getEnv("TRACING_ENABLED", "") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
