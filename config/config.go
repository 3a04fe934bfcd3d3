package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Providers ProvidersConfig
	Exec      ExecConfig
	Deploy    DeployConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	// BasePath is the root directory holding every owner's project trees.
	BasePath string
	// ExportRetention controls how long exported zip archives are kept
	// before the maintenance sweeper removes them.
	ExportRetention time.Duration
}

type ProvidersConfig struct {
	OpenAIKey    string
	AnthropicKey string
	GroqKey      string
}

type ExecConfig struct {
	Timeout time.Duration
}

type DeployConfig struct {
	VercelToken  string
	NetlifyToken string
	// APIKey, when set, gates the deploy endpoints behind X-API-Key.
	APIKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	// DSN is optional; deployment record persistence is disabled when empty.
	DSN string
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Store: StoreConfig{
			BasePath:        getEnv("PROJECTS_BASE_PATH", "/tmp/emergent_projects"),
			ExportRetention: getEnvAsDuration("EXPORT_RETENTION", 24*time.Hour),
		},
		Providers: ProvidersConfig{
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			AnthropicKey: getEnv("ANTHROPIC_API_KEY", ""),
			GroqKey:      getEnv("GROQ_API_KEY", ""),
		},
		Exec: ExecConfig{
			Timeout: getEnvAsDuration("EXEC_TIMEOUT", 30*time.Second),
		},
		Deploy: DeployConfig{
			VercelToken:  getEnv("VERCEL_TOKEN", ""),
			NetlifyToken: getEnv("NETLIFY_TOKEN", ""),
			APIKey:       getEnv("DEPLOY_API_KEY", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "2.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Store.BasePath == "" {
		return fmt.Errorf("PROJECTS_BASE_PATH is required")
	}

	if c.Exec.Timeout <= 0 {
		return fmt.Errorf("EXEC_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
