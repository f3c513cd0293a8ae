package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	RemoteGitHub = "github"
	RemoteMongo  = "mongo"

	FallbackRedis  = "redis"
	FallbackSQLite = "sqlite"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET,      required"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=24h"`
	DataDir        string        `env:"DATA_DIR,        default=docs/data"`
	WhatsAppNumber string        `env:"WHATSAPP_NUMBER, default=5511999999999"`
	MirrorWorkers  int           `env:"MIRROR_WORKERS,  default=4"`

	RemoteDriver   string `env:"REMOTE_DRIVER,   default=github"`
	FallbackDriver string `env:"FALLBACK_DRIVER, default=redis"`

	GitHub GitHubConfig `env:",prefix=GITHUB_"`
	Mongo  MongoConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
}

type GitHubConfig struct {
	Token   string `env:"TOKEN"`
	Owner   string `env:"OWNER"`
	Repo    string `env:"REPO"`
	Branch  string `env:"BRANCH,   default=main"`
	BaseURL string `env:"BASE_URL"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=storefront"`
	Collection string `env:"MONGO_COLLECTION, default=documents"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/fallback.db"`
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.RemoteDriver {
	case RemoteGitHub, RemoteMongo:
	default:
		return fmt.Errorf("REMOTE_DRIVER must be %q or %q, got %q", RemoteGitHub, RemoteMongo, c.RemoteDriver)
	}
	switch c.FallbackDriver {
	case FallbackRedis, FallbackSQLite:
	default:
		return fmt.Errorf("FALLBACK_DRIVER must be %q or %q, got %q", FallbackRedis, FallbackSQLite, c.FallbackDriver)
	}
	return nil
}
