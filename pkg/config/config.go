package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Riot rate limit window.
type LimitWindow struct {
	Count         int
	ResetInterval time.Duration
}

// Riot API configuration.
type RiotConfiguration struct {
	ApiKey         string
	HostFormat     string
	RequestTimeout time.Duration
	Concurrency    int
	MaxAttempts    int
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
	Limits         struct {
		Lower  LimitWindow
		Higher LimitWindow
	}
}

// Match history pipeline configuration.
type HistoryConfiguration struct {
	PageSize     int
	InitialFetch int
	Timeout      time.Duration
}

// Cache configuration, the backend can be "memory" or "redis".
type CacheConfiguration struct {
	Backend string
	TTL     time.Duration
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket configuration used for the log uploads.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Enabled reports if there is enough information to upload to the bucket.
func (b BucketConfiguration) Enabled() bool {
	return b.LogBucket != "" && b.AccessKey != "" && b.AccessSecret != ""
}

// DDragon asset configuration.
type AssetsConfiguration struct {
	Language        string
	RefreshInterval time.Duration
}

// HTTP and health servers.
type ServerConfiguration struct {
	Port       string
	HealthPort string
	LogLevel   string
}

// Config holds every configuration used across the services.
type Config struct {
	Environment string
	Riot        RiotConfiguration
	History     HistoryConfiguration
	Cache       CacheConfiguration
	Redis       RedisConfiguration
	Bucket      BucketConfiguration
	Assets      AssetsConfiguration
	Server      ServerConfiguration
}

// Load reads the configuration from the environment.
// Missing values fall back to defaults, malformed values are errors.
func Load() (*Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.Environment = getEnv("ENVIRONMENT", "development")

	// Riot API.
	cfg.Riot.ApiKey = os.Getenv("RIOT_API_KEY")
	cfg.Riot.HostFormat = getEnv("RIOT_HOST_FORMAT", "https://%s.api.riotgames.com")
	if cfg.Riot.RequestTimeout, err = getDuration("RIOT_REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Riot.Concurrency, err = getInt("RIOT_CONCURRENCY", 3); err != nil {
		return nil, err
	}
	if cfg.Riot.MaxAttempts, err = getInt("RIOT_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.Riot.BaseBackoff, err = getDuration("RIOT_BASE_BACKOFF", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Riot.MaxBackoff, err = getDuration("RIOT_MAX_BACKOFF", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.Riot.Limits.Lower.Count, err = getInt("LOWER_LIMIT_COUNT", 20); err != nil {
		return nil, err
	}
	if cfg.Riot.Limits.Lower.ResetInterval, err = getDuration("LOWER_LIMIT_RESET", time.Second); err != nil {
		return nil, err
	}
	if cfg.Riot.Limits.Higher.Count, err = getInt("HIGHER_LIMIT_COUNT", 100); err != nil {
		return nil, err
	}
	if cfg.Riot.Limits.Higher.ResetInterval, err = getDuration("HIGHER_LIMIT_RESET", 2*time.Minute); err != nil {
		return nil, err
	}

	// Match history.
	if cfg.History.PageSize, err = getInt("HISTORY_PAGE_SIZE", 20); err != nil {
		return nil, err
	}
	if cfg.History.InitialFetch, err = getInt("HISTORY_INITIAL_FETCH", 5); err != nil {
		return nil, err
	}
	if cfg.History.Timeout, err = getDuration("HISTORY_TIMEOUT", 25*time.Second); err != nil {
		return nil, err
	}

	// Cache.
	cfg.Cache.Backend = getEnv("CACHE_BACKEND", "memory")
	if cfg.Cache.TTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	// Redis.
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Bucket.
	cfg.Bucket.Region = getEnv("BUCKET_REGION", "auto")
	cfg.Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	cfg.Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	cfg.Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	cfg.Bucket.LogBucket = os.Getenv("BUCKET_LOG_NAME")

	// Assets.
	cfg.Assets.Language = getEnv("ASSETS_LANGUAGE", "en_US")
	if cfg.Assets.RefreshInterval, err = getDuration("ASSETS_REFRESH_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}

	// Servers.
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.HealthPort = getEnv("HEALTH_PORT", "50051")
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the values that would break the pipeline.
func (c *Config) validate() error {
	if c.Riot.Concurrency < 1 {
		return fmt.Errorf("RIOT_CONCURRENCY must be at least 1, got %d", c.Riot.Concurrency)
	}
	if c.Riot.MaxAttempts < 1 {
		return fmt.Errorf("RIOT_MAX_ATTEMPTS must be at least 1, got %d", c.Riot.MaxAttempts)
	}
	if c.History.PageSize < 1 || c.History.PageSize > 100 {
		return fmt.Errorf("HISTORY_PAGE_SIZE must be between 1 and 100, got %d", c.History.PageSize)
	}
	if c.History.InitialFetch < 1 || c.History.InitialFetch > c.History.PageSize {
		return fmt.Errorf("HISTORY_INITIAL_FETCH must be between 1 and the page size, got %d", c.History.InitialFetch)
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", c.Cache.Backend)
	}
	return nil
}

// Return the env value or the fallback.
func getEnv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return parsed, nil
}
