package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"yt-duration-match/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App     App     `mapstructure:"app"`
	YouTube YouTube `mapstructure:"youtube"`
	Cache   Cache   `mapstructure:"cache"`
	Retry   Retry   `mapstructure:"retry"`
	Logger  Logger  `mapstructure:"logger"`
}

// App holds the default target duration
type App struct {
	Minutes int `mapstructure:"minutes"`
	Seconds int `mapstructure:"seconds"`
}

type YouTube struct {
	APIKey         string        `mapstructure:"apiKey"`
	MaxResults     int           `mapstructure:"maxResults"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

type Cache struct {
	Enabled  bool        `mapstructure:"enabled"`
	Driver   string      `mapstructure:"driver"` // file, redis or postgres
	File     string      `mapstructure:"file"`
	Redis    RedisClient `mapstructure:"redis"`
	Postgres Db          `mapstructure:"postgres"`
}

type RedisClient struct {
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

type Db struct {
	Name     string `mapstructure:"name"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslMode"`
}

// Retry is the search page retry policy. MaxAttempts 0 retries forever.
type Retry struct {
	MaxAttempts    int           `mapstructure:"maxAttempts"`
	InitialBackoff time.Duration `mapstructure:"initialBackoff"`
	MaxBackoff     time.Duration `mapstructure:"maxBackoff"`
	Multiplier     float64       `mapstructure:"multiplier"`
}

type Logger struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

const (
	CacheDriverFile     = "file"
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
)

var C Config

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string][]string{
	"youtube.apiKey":          {"API_KEY", "YOUTUBE_API_KEY"},
	"youtube.maxResults":      {"YOUTUBE_MAX_RESULTS"},
	"youtube.requestTimeout":  {"YOUTUBE_REQUEST_TIMEOUT"},
	"cache.enabled":           {"CACHE_ENABLED"},
	"cache.driver":            {"CACHE_DRIVER"},
	"cache.file":              {"CACHE_FILE"},
	"cache.redis.host":        {"REDIS_HOST"},
	"cache.redis.port":        {"REDIS_PORT"},
	"cache.redis.username":    {"REDIS_USERNAME"},
	"cache.redis.password":    {"REDIS_PASSWORD"},
	"cache.redis.db":          {"REDIS_DB"},
	"cache.postgres.name":     {"DB_NAME"},
	"cache.postgres.host":     {"DB_HOST"},
	"cache.postgres.port":     {"DB_PORT"},
	"cache.postgres.user":     {"DB_USER"},
	"cache.postgres.password": {"DB_PASSWORD"},
	"retry.maxAttempts":       {"RETRY_MAX_ATTEMPTS"},
	"logger.format":           {"LOG_FORMAT"},
	"logger.level":            {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.minutes", 20)
	v.SetDefault("app.seconds", 22)
	v.SetDefault("youtube.apiKey", "")
	v.SetDefault("youtube.maxResults", 50)
	v.SetDefault("youtube.requestTimeout", "0s")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.driver", CacheDriverFile)
	v.SetDefault("cache.file", "cache.gob")
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", "6379")
	v.SetDefault("cache.redis.username", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.keyPrefix", "ytduration:")
	v.SetDefault("cache.postgres.name", "")
	v.SetDefault("cache.postgres.host", "localhost")
	v.SetDefault("cache.postgres.port", "5432")
	v.SetDefault("cache.postgres.user", "")
	v.SetDefault("cache.postgres.password", "")
	v.SetDefault("cache.postgres.sslMode", "disable")
	v.SetDefault("retry.maxAttempts", 5)
	v.SetDefault("retry.initialBackoff", "1s")
	v.SetDefault("retry.maxBackoff", "30s")
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.level", "info")
}

// LoadConfig reads config.json (or config-<ENV>.json) if present, then environment overrides,
// and stores the result in C
func LoadConfig(searchPaths ...string) (*Config, error) {
	v := viper.New()
	name := getConfig()
	v.SetConfigName(name)
	v.SetConfigType("json")
	if len(searchPaths) == 0 {
		searchPaths = []string{".", "../", "../../"}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		logger.GetLogger().WithField("config", name).Debug("Config file not found, using defaults and environment")
	} else {
		logger.GetLogger().WithField("config", v.ConfigFileUsed()).Info("Config set up successfully")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("viper unable to decode into struct: %w", err)
	}
	cfg.YouTube.APIKey = strings.TrimSpace(cfg.YouTube.APIKey)

	C = cfg
	return &cfg, nil
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}
