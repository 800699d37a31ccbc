package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type GRPC struct {
	Addr string `yaml:"addr"` // пусто = admin gRPC выключен
}

type HTTP struct {
	Addr            string   `yaml:"addr"`
	RequestTimeout  string   `yaml:"requestTimeout"`  // 30s
	ShutdownTimeout string   `yaml:"shutdownTimeout"` // 10s
	AllowedOrigins  []string `yaml:"allowedOrigins"`  // ["*"]
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // ama-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	Level     string `yaml:"level"`     // debug|info|warn|error
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	DSN               string `yaml:"dsn"`
	MaxConns          int32  `yaml:"maxConns"`
	MinConns          int32  `yaml:"minConns"`
	MaxConnLifetime   string `yaml:"maxConnLifetime"`
	HealthCheckPeriod string `yaml:"healthCheckPeriod"`
}

type Redis struct {
	Addr     string `yaml:"addr"` // пусто = без кэша
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AI struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

type Highlights struct {
	Source   string `yaml:"source"`   // rules|ai
	CacheTTL string `yaml:"cacheTTL"` // 10m
}

type Meeting struct {
	BaseURL string `yaml:"baseURL"`
}

type WS struct {
	PingInterval string `yaml:"pingInterval"` // 30s
	SendBuffer   int    `yaml:"sendBuffer"`   // 64
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	GRPC       GRPC       `yaml:"grpc"`
	Logging    Logging    `yaml:"logging"`
	Postgres   Postgres   `yaml:"postgres"`
	Redis      Redis      `yaml:"redis"`
	AI         AI         `yaml:"ai"`
	Highlights Highlights `yaml:"highlights"`
	Meeting    Meeting    `yaml:"meeting"`
	WS         WS         `yaml:"ws"`
}

// overrides из окружения; секреты сюда, а не в yaml
type overrides struct {
	AppEnv     string `env:"APP_ENV"`
	HTTPAddr   string `env:"HTTP_ADDR"`
	GRPCAddr   string `env:"GRPC_ADDR"`
	DSN        string `env:"DATABASE_URL"`
	RedisAddr  string `env:"REDIS_ADDR"`
	RedisPass  string `env:"REDIS_PASSWORD"`
	GeminiKey  string `env:"GEMINI_API_KEY"`
	GeminiMod  string `env:"GEMINI_MODEL"`
	MeetingURL string `env:"MEETING_SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse разбирает yaml, накладывает переменные окружения и проверяет результат.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var o overrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.apply(o)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) apply(o overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Logging.Env, o.AppEnv)
	set(&c.HTTP.Addr, o.HTTPAddr)
	set(&c.GRPC.Addr, o.GRPCAddr)
	set(&c.Postgres.DSN, o.DSN)
	set(&c.Redis.Addr, o.RedisAddr)
	set(&c.Redis.Password, o.RedisPass)
	set(&c.AI.APIKey, o.GeminiKey)
	set(&c.AI.Model, o.GeminiMod)
	set(&c.Meeting.BaseURL, o.MeetingURL)
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	switch c.Highlights.Source {
	case "":
		c.Highlights.Source = "rules"
	case "rules", "ai":
	default:
		return fmt.Errorf("highlights.source: unknown value %q", c.Highlights.Source)
	}

	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "ama-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-1.5-flash"
	}
	if c.Meeting.BaseURL == "" {
		c.Meeting.BaseURL = "https://meet.google.com"
	}
	c.Meeting.BaseURL = strings.TrimRight(c.Meeting.BaseURL, "/")
	if c.WS.SendBuffer <= 0 {
		c.WS.SendBuffer = 64
	}
	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return parseDurationOr(30*time.Second, c.HTTP.RequestTimeout)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return parseDurationOr(10*time.Second, c.HTTP.ShutdownTimeout)
}

func (c *Config) PingInterval() time.Duration {
	return parseDurationOr(30*time.Second, c.WS.PingInterval)
}

func (c *Config) HighlightsTTL() time.Duration {
	return parseDurationOr(10*time.Minute, c.Highlights.CacheTTL)
}

func (c *Config) MaxConnLifetime() time.Duration {
	return parseDurationOr(time.Hour, c.Postgres.MaxConnLifetime)
}

func (c *Config) HealthCheckPeriod() time.Duration {
	return parseDurationOr(30*time.Second, c.Postgres.HealthCheckPeriod)
}

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
