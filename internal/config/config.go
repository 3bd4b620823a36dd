package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLM providers understood by the llm package.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Session memory backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	LLM        LLMConfig
	Embedding  EmbeddingConfig
	Session    SessionConfig
	Chat       ChatConfig
	Auth       AuthConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// LLMConfig selects and tunes the hosted model used for replies
type LLMConfig struct {
	Provider        string
	APIKey          string
	APIBase         string // only used by the openai provider
	ChatModel       string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	Timeout         time.Duration
}

// EmbeddingConfig configures listing embeddings used to pick prompt context
type EmbeddingConfig struct {
	Enabled    bool
	Model      string
	Dimensions int
	BatchSize  int
}

// SessionConfig configures the conversational memory backend
type SessionConfig struct {
	Backend       string
	Retention     int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	TTL           time.Duration
}

// ChatConfig holds chat pipeline settings
type ChatConfig struct {
	PropertyContextLimit int
}

// AuthConfig holds token issuing configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, with an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                firstNonEmpty(v.GetString("DATABASE_URL"), v.GetString("POSTGRESQL_URI"), v.GetString("PG_DSN")),
			Host:               v.GetString("PG_HOST"),
			Port:               v.GetInt("PG_PORT"),
			User:               v.GetString("PG_USER"),
			Password:           v.GetString("PG_PASSWORD"),
			Database:           v.GetString("PG_DATABASE"),
			SSLMode:            v.GetString("PG_SSLMODE"),
			MaxConnections:     v.GetInt("PG_MAX_CONNECTIONS"),
			MaxIdleConnections: v.GetInt("PG_MAX_IDLE_CONNECTIONS"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			GinMode:        v.GetString("GIN_MODE"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(v.GetString("LLM_PROVIDER")),
			APIKey:          firstNonEmpty(v.GetString("LLM_API_KEY"), v.GetString("GEMINI_API_KEY"), v.GetString("OPENAI_API_KEY")),
			APIBase:         v.GetString("OPENAI_API_BASE"),
			ChatModel:       v.GetString("LLM_CHAT_MODEL"),
			Temperature:     v.GetFloat64("LLM_TEMPERATURE"),
			TopP:            v.GetFloat64("LLM_TOP_P"),
			TopK:            v.GetInt("LLM_TOP_K"),
			MaxOutputTokens: v.GetInt("LLM_MAX_OUTPUT_TOKENS"),
			Timeout:         v.GetDuration("CHAT_MODEL_TIMEOUT"),
		},
		Embedding: EmbeddingConfig{
			Enabled:    v.GetBool("EMBEDDING_ENABLED"),
			Model:      v.GetString("EMBEDDING_MODEL"),
			Dimensions: v.GetInt("EMBEDDING_DIMENSIONS"),
			BatchSize:  v.GetInt("EMBEDDING_BATCH_SIZE"),
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(v.GetString("SESSION_BACKEND")),
			Retention:     v.GetInt("SESSION_RETENTION"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			KeyPrefix:     v.GetString("SESSION_KEY_PREFIX"),
			TTL:           v.GetDuration("SESSION_TTL"),
		},
		Chat: ChatConfig{
			PropertyContextLimit: v.GetInt("CHAT_PROPERTY_CONTEXT_LIMIT"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("JWT_TOKEN_TTL"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = defaultChatModel(cfg.LLM.Provider)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", 5432)
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_DATABASE", "realestate_db")
	v.SetDefault("PG_SSLMODE", "disable")
	v.SetDefault("PG_MAX_CONNECTIONS", 25)
	v.SetDefault("PG_MAX_IDLE_CONNECTIONS", 5)

	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Content-Type,Authorization")

	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("LLM_TOP_P", 0.8)
	v.SetDefault("LLM_TOP_K", 40)
	v.SetDefault("LLM_MAX_OUTPUT_TOKENS", 1024)
	v.SetDefault("CHAT_MODEL_TIMEOUT", 30*time.Second)

	v.SetDefault("EMBEDDING_ENABLED", false)
	v.SetDefault("EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("EMBEDDING_DIMENSIONS", 768)
	v.SetDefault("EMBEDDING_BATCH_SIZE", 50)

	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_RETENTION", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_KEY_PREFIX", "realestate")
	v.SetDefault("SESSION_TTL", 24*time.Hour)

	v.SetDefault("CHAT_PROPERTY_CONTEXT_LIMIT", 5)

	v.SetDefault("JWT_TOKEN_TTL", 30*time.Minute)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unsupported LLM_PROVIDER %q, must be %s or %s", c.LLM.Provider, ProviderGemini, ProviderOpenAI))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("missing LLM credential: set LLM_API_KEY (or GEMINI_API_KEY / OPENAI_API_KEY)"))
	}

	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unsupported SESSION_BACKEND %q", c.Session.Backend))
	}
	if c.Session.Retention <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_RETENTION must be positive, got %d", c.Session.Retention))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("missing JWT_SECRET"))
	}

	return errors.Join(errs...)
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

func defaultChatModel(provider string) string {
	if provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.0-flash"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
