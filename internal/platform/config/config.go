package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration. Fields are populated from
// environment variables; nested sections are parsed with their envPrefix.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"helvetia"`
	Env         string `env:"ENV" envDefault:"prod"`

	HTTP   HTTP     `envPrefix:"HTTP_"`
	Log    Logger   `envPrefix:"LOG_"`
	Psql   Postgres `envPrefix:"PSQL_"`
	Redis  Redis    `envPrefix:"REDIS_"`
	Minio  Minio    `envPrefix:"MINIO_"`
	Auth   Auth     `envPrefix:"AUTH_"`
	Worker Worker   `envPrefix:"WORKER_"`
	Clip   Clip     `envPrefix:"CLIP_"`
}

type HTTP struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

// Logger controls the minimum level and the output encoding of the
// structured logger. Unknown values fall back to info/text.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Logger) JSONFormat() bool {
	return strings.ToLower(c.Format) == "json"
}

type Postgres struct {
	DSN     string `env:"DSN"`
	Migrate bool   `env:"MIGRATE" envDefault:"true"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Minio struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"helvetia-media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Clip configures the media engine used by the trim endpoint. An empty
// scratch dir means a per-process temp directory.
type Clip struct {
	FFmpegBinary string `env:"FFMPEG_BINARY" envDefault:"ffmpeg"`
	ScratchDir   string `env:"SCRATCH_DIR"`
}

type Worker struct {
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize     int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	EnableDeadlineSweep bool          `env:"ENABLE_DEADLINE_SWEEP" envDefault:"true"`
}

// Load reads configuration from environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
