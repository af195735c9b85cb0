package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yukikurage/kanban-board/internal/constants"
)

type Config struct {
	DBDriver         string        `yaml:"db_driver"`
	DBHost           string        `yaml:"db_host"`
	DBPort           string        `yaml:"db_port"`
	DBUser           string        `yaml:"db_user"`
	DBPassword       string        `yaml:"db_password"`
	DBName           string        `yaml:"db_name"`
	RedisHost        string        `yaml:"redis_host"`
	RedisPort        string        `yaml:"redis_port"`
	SessionSecret    string        `yaml:"session_secret"`
	SessionStore     string        `yaml:"session_store"`
	GinMode          string        `yaml:"gin_mode"`
	ServerPort       string        `yaml:"server_port"`
	OpenAIAPIKey     string        `yaml:"openai_api_key"`
	OpenAIModel      string        `yaml:"openai_model"`
	AssistantTimeout time.Duration `yaml:"assistant_timeout"`
	BoardIdleTTL     time.Duration `yaml:"board_idle_ttl"`
	LogLevel         string        `yaml:"log_level"`
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DBDriver:         "mysql",
		DBHost:           "localhost",
		DBPort:           "3306",
		DBUser:           "taskuser",
		DBPassword:       "taskpassword",
		DBName:           "kanban_board",
		RedisHost:        "localhost",
		RedisPort:        "6379",
		SessionSecret:    "default-secret-key-change-me",
		SessionStore:     "redis",
		GinMode:          "debug",
		ServerPort:       "8080",
		OpenAIModel:      constants.DefaultOpenAIModel,
		AssistantTimeout: constants.DefaultAssistantTimeout,
		BoardIdleTTL:     constants.DefaultBoardIdleTTL,
		LogLevel:         "info",
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) overrideFromEnv() error {
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnv("REDIS_PORT", c.RedisPort)
	c.SessionSecret = getEnv("SESSION_SECRET", c.SessionSecret)
	c.SessionStore = getEnv("SESSION_STORE", c.SessionStore)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.ServerPort = getEnv("PORT", c.ServerPort)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	var err error
	if c.AssistantTimeout, err = getDurationEnv("ASSISTANT_TIMEOUT", c.AssistantTimeout); err != nil {
		return err
	}
	if c.BoardIdleTTL, err = getDurationEnv("BOARD_IDLE_TTL", c.BoardIdleTTL); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
