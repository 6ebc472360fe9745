package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Verifier struct {
		BaseURL string        `env:"VERIFIER_BASE_URL" env-default:"http://localhost:6000"`
		Timeout time.Duration `env:"VERIFIER_TIMEOUT" env-default:"30s"`
	}
	Profile struct {
		Handle   string `env:"PROFILE_HANDLE"`
		City     string `env:"PROFILE_CITY" env-default:"Amsterdam"`
		State    string `env:"PROFILE_STATE" env-default:"MA"`
		ImageRef string `env:"PROFILE_IMAGE" env-default:"https://source.unsplash.com/random/500x500"`
	}
	Camera struct {
		FrontSource string `env:"CAMERA_FRONT_SOURCE" env-default:"./frames/front.jpg"`
		BackSource  string `env:"CAMERA_BACK_SOURCE" env-default:"./frames/back.jpg"`
		CaptureDir  string `env:"CAMERA_CAPTURE_DIR" env-default:"./captures"`
		// Permission answered by the device when asked: granted, denied or blocked.
		Permission string `env:"CAMERA_PERMISSION" env-default:"granted"`
	}
	Telegram struct {
		BotToken string `env:"TELEGRAM_TOKEN"`
		Channel  string `env:"TELEGRAM_CHANNEL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Housekeeping struct {
		SweepInterval    time.Duration `env:"HOUSEKEEPING_SWEEP_INTERVAL" env-default:"1h"`
		CaptureRetention time.Duration `env:"HOUSEKEEPING_CAPTURE_RETENTION" env-default:"24h"`
		JournalRetention time.Duration `env:"HOUSEKEEPING_JOURNAL_RETENTION" env-default:"720h"`
	}
	RateLimit struct {
		Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"3"`
		Per      time.Duration `env:"RATE_LIMIT_PER" env-default:"10s"`
		Burst    int           `env:"RATE_LIMIT_BURST" env-default:"3"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// JournalEnabled reports whether a Postgres journal is configured.
func (c *Config) JournalEnabled() bool {
	return c.Postgres.Host != ""
}

// TelegramEnabled reports whether friend connections are announced on Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.Channel != ""
}

// GetDSN returns the lib/pq style connection string used by goose.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetURL returns the pgx connection url.
func (c *Config) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SslMode,
	)
}
