package config

import (
	"log"
	"os"
	"strconv"

	"fooddash-client/internal/api"

	"github.com/joho/godotenv"
)

// API variants. The hosted backend and the legacy admin backend answer with
// different response shapes and status vocabularies, so the active variant is
// part of the configuration rather than something sniffed per response.
const (
	VariantBare     = api.VariantBare
	VariantEnvelope = api.VariantEnvelope
)

// Token store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type Config struct {
	APIBaseURL string
	APIVariant string
	MockAuth   bool
	TokenStore string
	TokenFile  string
	RedisAddr  string
	AppEnv     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: getenv("API_BASE_URL", "https://food-delivery-backend-cul5.onrender.com/api"),
		APIVariant: getenv("API_VARIANT", VariantBare),
		MockAuth:   getbool("MOCK_AUTH", false),
		TokenStore: getenv("TOKEN_STORE", StoreFile),
		TokenFile:  getenv("TOKEN_FILE", defaultTokenFile()),
		RedisAddr:  getenv("REDIS_ADDR", "localhost:6379"),
		AppEnv:     getenv("APP_ENV", "development"),
	}

	if cfg.APIVariant != VariantBare && cfg.APIVariant != VariantEnvelope {
		log.Fatalf("unknown API_VARIANT %q", cfg.APIVariant)
	}
	if cfg.TokenStore != StoreMemory && cfg.TokenStore != StoreFile && cfg.TokenStore != StoreRedis {
		log.Fatalf("unknown TOKEN_STORE %q", cfg.TokenStore)
	}

	return cfg
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fooddash_token"
	}
	return home + "/.fooddash_token"
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
