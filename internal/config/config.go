package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	EventLog   EventLogConfig   `mapstructure:"eventlog"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"` // sqlite only
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

type EventLogConfig struct {
	Driver       string        `mapstructure:"driver"` // esdb, gorm, memory
	DSN          string        `mapstructure:"dsn"`
	Stream       string        `mapstructure:"stream"`
	PollInterval time.Duration `mapstructure:"poll_interval"` // gorm driver only
}

type CacheConfig struct {
	Driver   string `mapstructure:"driver"` // redis, memory
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ProvidersConfig struct {
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	AzureOpenAI AzureOpenAIConfig `mapstructure:"azure_openai"`
	Stability   StabilityConfig   `mapstructure:"stability"`
	Google      GoogleConfig      `mapstructure:"google"`
	Gemini      GoogleConfig      `mapstructure:"gemini"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Size    string `mapstructure:"size"`
}

type AzureOpenAIConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIKey     string `mapstructure:"api_key"`
	Deployment string `mapstructure:"deployment"`
	APIVersion string `mapstructure:"api_version"`
}

type StabilityConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type HuggingFaceConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

type ClassifierConfig struct {
	Provider    string            `mapstructure:"provider"` // mock, azure
	AzureVision AzureVisionConfig `mapstructure:"azure_vision"`
}

type AzureVisionConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/imagen.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("eventlog.driver", "gorm")
	v.SetDefault("eventlog.stream", "image-events")
	v.SetDefault("eventlog.poll_interval", 200*time.Millisecond)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("providers.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("providers.openai.model", "dall-e-3")
	v.SetDefault("providers.openai.size", "1024x1024")
	v.SetDefault("providers.azure_openai.api_version", "2024-02-01")
	v.SetDefault("providers.stability.model", "core")
	v.SetDefault("providers.google.model", "imagen-3.0-generate-001")
	v.SetDefault("providers.gemini.model", "imagen-3.0-generate-002")
	v.SetDefault("classifier.provider", "mock")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("eventlog.dsn", "EVENTSTORE_DSN")
	v.BindEnv("cache.addr", "REDIS_ADDR")
	v.BindEnv("cache.password", "REDIS_PASSWORD")
	v.BindEnv("providers.openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("providers.openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("providers.azure_openai.endpoint", "AZURE_OPENAI_ENDPOINT")
	v.BindEnv("providers.azure_openai.api_key", "AZURE_OPENAI_API_KEY")
	v.BindEnv("providers.azure_openai.deployment", "AZURE_OPENAI_DEPLOYMENT")
	v.BindEnv("providers.stability.api_key", "STABILITY_API_KEY")
	v.BindEnv("providers.google.api_key", "GOOGLE_API_KEY")
	v.BindEnv("providers.gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("providers.huggingface.api_key", "HUGGINGFACE_API_KEY")
	v.BindEnv("providers.huggingface.endpoint", "HUGGINGFACE_ENDPOINT")
	v.BindEnv("classifier.azure_vision.endpoint", "AZURE_VISION_ENDPOINT")
	v.BindEnv("classifier.azure_vision.api_key", "AZURE_VISION_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
