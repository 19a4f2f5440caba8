package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// Storage driver and session backend selectors.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

type Config struct {
	Port          string        `env:"PORT,            default=8080"`
	Env           string        `env:"ENV,             default=development"`
	LogLevel      string        `env:"LOG_LEVEL,       default=info"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,     default=24h"`
	StaticDir     string        `env:"STATIC_DIR,      default=web/public"`

	// Admin credentials injected via environment take precedence over the
	// credentials file; see the credentials package.
	AdminUsername     string `env:"ADMIN_USERNAME"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	CredentialsFile   string `env:"CONFIG_FILE,     default=config.json"`

	StoreDriver    string `env:"STORE_DRIVER,    default=file"`
	DataFile       string `env:"DATA_FILE,       default=data.json"`
	SessionBackend string `env:"SESSION_BACKEND, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI         string        `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database    string        `env:"MONGO_DB,           default=yiftach_sign"`
	PingTimeout time.Duration `env:"MONGO_PING_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,         default=localhost:6379"`
	DB          int           `env:"REDIS_DB,           default=0"`
	PingTimeout time.Duration `env:"REDIS_PING_TIMEOUT, default=5s"`
}

// Production reports whether the process runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
