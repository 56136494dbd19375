package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Допустимые драйверы хранилища предпочтений
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Upstream    UpstreamConfig    `toml:"upstream"`
	Auth        AuthConfig        `toml:"auth"`
	Mapbox      MapboxConfig      `toml:"mapbox"`
	Storage     StorageConfig     `toml:"storage"`
	Redis       RedisConfig       `toml:"redis"`
	Booking     BookingConfig     `toml:"booking"`
	Search      SearchConfig      `toml:"search"`
	Geolocation GeolocationConfig `toml:"geolocation"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UpstreamConfig API маркетплейса
type UpstreamConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// AuthConfig HMAC-секрет токенов API маркетплейса.
// Пустой секрет: bearer-токены отклоняются, работают только сессии X-Client-ID.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// MapboxConfig пустой токен отключает IP-fallback геолокации и маршруты
type MapboxConfig struct {
	AccessToken  string `toml:"access_token"`
	BaseURL      string `toml:"base_url"`
	Timeout      int    `toml:"timeout"`
	DefaultPlace string `toml:"default_place"`
}

type StorageConfig struct {
	Driver          string `toml:"driver"`
	DSN             string `toml:"dsn"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type BookingConfig struct {
	// RequireAddress адресный шаг мастера записи обязателен
	RequireAddress bool `toml:"require_address"`
}

type SearchConfig struct {
	DebounceMs        int `toml:"debounce_ms"`
	MaxRecentSearches int `toml:"max_recent_searches"`
}

type GeolocationConfig struct {
	TimeoutSeconds int  `toml:"timeout_seconds"`
	FallbackToIP   bool `toml:"fallback_to_ip"`
}

// Load читает .env (если есть), TOML-файл и переменные окружения
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "pressing-gateway",
		},
		Upstream: UpstreamConfig{
			BaseURL: "http://localhost:5002/api/v1",
			Timeout: 10,
		},
		Mapbox: MapboxConfig{
			BaseURL:      "https://api.mapbox.com",
			Timeout:      5,
			DefaultPlace: "Abidjan",
		},
		Storage: StorageConfig{
			Driver:          StorageSQLite,
			DSN:             "file:pressing-gateway.db?_pragma=busy_timeout(5000)",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis:       RedisConfig{Addr: "localhost:6379"},
		Booking:     BookingConfig{RequireAddress: true},
		Search:      SearchConfig{DebounceMs: 300, MaxRecentSearches: 10},
		Geolocation: GeolocationConfig{TimeoutSeconds: 15, FallbackToIP: true},
	}
}

func applyEnv(cfg *Config) {
	if v := firstEnv("API_URL", "REACT_APP_API_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("MAPBOX_TOKEN"); v != "" {
		cfg.Mapbox.AccessToken = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("%w: upstream.base_url is required", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageSQLite, StoragePostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage.dsn is required for driver %s", ErrInvalidConfig, c.Storage.Driver)
		}
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Upstream.Timeout <= 0 || c.Mapbox.Timeout <= 0 || c.Geolocation.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if c.Search.DebounceMs < 0 || c.Search.MaxRecentSearches <= 0 {
		return fmt.Errorf("%w: invalid search settings", ErrInvalidConfig)
	}

	return nil
}

// BearerAuthEnabled настроен ли секрет для проверки bearer-токенов
func (c *Config) BearerAuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// MapboxEnabled есть ли токен Mapbox
func (c *Config) MapboxEnabled() bool {
	return c.Mapbox.AccessToken != ""
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Second
}

func (c *Config) MapboxTimeout() time.Duration {
	return time.Duration(c.Mapbox.Timeout) * time.Second
}

func (c *Config) GeolocationTimeout() time.Duration {
	return time.Duration(c.Geolocation.TimeoutSeconds) * time.Second
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}
