package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"project-school/backend/internal/utils"
)

type ServerConfig struct {
	Host         string
	Port         int
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL            string
	Name           string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

// LoadConfig reads configuration from the environment, first loading a .env
// file when one is present in the working directory.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         utils.GetEnv("HOST", "0.0.0.0"),
			Port:         utils.GetEnvAsInt("PORT", 8000),
			Environment:  utils.GetEnv("ENVIRONMENT", "development"),
			ReadTimeout:  utils.GetEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout: utils.GetEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  utils.GetEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:            utils.GetEnv("MONGODB_URL", "mongodb://localhost:27017"),
			Name:           utils.GetEnv("DATABASE_NAME", "projects"),
			MaxPoolSize:    utils.GetEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:    utils.GetEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
			ConnectTimeout: utils.GetEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 5*time.Second),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("MONGODB_URL must not be empty")
	}
	if cfg.Database.Name == "" {
		return nil, fmt.Errorf("DATABASE_NAME must not be empty")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Server.Port)
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
