package config

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	CORSOrigins []string

	StorageBackend string // "supabase" or "postgres"
	SupabaseURL    string
	SupabaseKey    string
	JWTSecret      string
	PostgresDSN    string
	AuthEndpoint   string // remote token validation; defaults to SupabaseURL

	ModelName        string
	ModelBaseURL     string
	ModelAPIKey      string
	ModelMaxTokens   int
	ModelTemperature float64

	ContextCacheTTL     time.Duration
	MaxHistoryMessages  int
	MaxItemsPerCategory int
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration from the environment (and .env, if present) exactly
// once and panics on invalid combinations, matching service startup semantics.
func Load() *Config {
	once.Do(func() {
		v := viper.New()
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		_ = v.ReadInConfig() // .env is optional
		v.AutomaticEnv()

		v.SetDefault("APP_ENV", "development")
		v.SetDefault("PORT", "8080")
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("CORS_ORIGINS", "http://localhost:8081")
		v.SetDefault("STORAGE_BACKEND", "supabase")
		v.SetDefault("MODEL_NAME", "gpt-4o-mini")
		v.SetDefault("MODEL_MAX_TOKENS", 350)
		v.SetDefault("MODEL_TEMPERATURE", 0.6)
		v.SetDefault("CONTEXT_CACHE_TTL", "60s")
		v.SetDefault("MAX_HISTORY_MESSAGES", 20)
		v.SetDefault("MAX_ITEMS_PER_CATEGORY", 5)

		origins := []string{}
		for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}

		authEndpoint := v.GetString("AUTH_ENDPOINT")
		if authEndpoint == "" {
			authEndpoint = v.GetString("SUPABASE_URL")
		}

		cfg = &Config{
			Env:                 v.GetString("APP_ENV"),
			Port:                v.GetString("PORT"),
			LogLevel:            v.GetString("LOG_LEVEL"),
			CORSOrigins:         origins,
			StorageBackend:      v.GetString("STORAGE_BACKEND"),
			SupabaseURL:         v.GetString("SUPABASE_URL"),
			SupabaseKey:         v.GetString("SUPABASE_KEY"),
			JWTSecret:           v.GetString("SUPABASE_JWT_SECRET"),
			PostgresDSN:         v.GetString("POSTGRES_DSN"),
			AuthEndpoint:        authEndpoint,
			ModelName:           v.GetString("MODEL_NAME"),
			ModelBaseURL:        v.GetString("MODEL_BASE_URL"),
			ModelAPIKey:         v.GetString("MODEL_API_KEY"),
			ModelMaxTokens:      v.GetInt("MODEL_MAX_TOKENS"),
			ModelTemperature:    v.GetFloat64("MODEL_TEMPERATURE"),
			ContextCacheTTL:     v.GetDuration("CONTEXT_CACHE_TTL"),
			MaxHistoryMessages:  v.GetInt("MAX_HISTORY_MESSAGES"),
			MaxItemsPerCategory: v.GetInt("MAX_ITEMS_PER_CATEGORY"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "supabase":
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required when STORAGE_BACKEND=supabase")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: supabase, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.ContextCacheTTL <= 0 {
		return errors.New("CONTEXT_CACHE_TTL must be positive")
	}
	if c.MaxItemsPerCategory < 1 {
		return errors.New("MAX_ITEMS_PER_CATEGORY must be at least 1")
	}
	return nil
}
