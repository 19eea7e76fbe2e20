package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	// Timezone decides where a calendar day starts for deadline checks.
	Timezone    string        `env:"TZ_NAME,            default=Local"`
	TokenTTL    time.Duration `env:"JWT_TTL,            default=24h"`
	CORSOrigins []string      `env:"CORS_ALLOW_ORIGINS, default=*"`
	BodyLimit   string        `env:"HTTP_BODY_LIMIT,    default=20M"`

	// The bootstrap admin is created at startup when it does not exist yet.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Reminder ReminderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clients"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SMTPConfig struct {
	Host        string        `env:"SMTP_HOST,      default=smtp.gmail.com"`
	Port        int           `env:"SMTP_PORT,      default=587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	FromName    string        `env:"SMTP_FROM_NAME, default=Accounts Team"`
	FromAddress string        `env:"SMTP_FROM"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT,   default=15s"`
}

type StorageConfig struct {
	Endpoint        string `env:"STORAGE_ENDPOINT,   default=localhost:9000"`
	AccessKeyID     string `env:"STORAGE_ACCESS_KEY"`
	SecretAccessKey string `env:"STORAGE_SECRET_KEY"`
	Bucket          string `env:"STORAGE_BUCKET,     default=client-documents"`
	Region          string `env:"STORAGE_REGION,     default=us-east-1"`
	UseSSL          bool   `env:"STORAGE_USE_SSL,    default=false"`
}

type ReminderConfig struct {
	Cron        string        `env:"REMINDER_CRON,         default=0 9 * * *"`
	RunOnStart  bool          `env:"REMINDER_RUN_ON_START, default=false"`
	SendTimeout time.Duration `env:"REMINDER_SEND_TIMEOUT, default=30s"`
	ScanTimeout time.Duration `env:"REMINDER_SCAN_TIMEOUT, default=30m"`
	Workers     int           `env:"REMINDER_WORKERS,      default=1"`
	// Ledger is "memory" or "redis".
	Ledger         string        `env:"REMINDER_LEDGER,       default=memory"`
	DocumentURLTTL time.Duration `env:"DOCUMENT_URL_TTL,      default=15m"`
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	switch c.Reminder.Ledger {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: REMINDER_LEDGER must be memory or redis, got %q", c.Reminder.Ledger)
	}
	if c.Reminder.Workers < 1 {
		return fmt.Errorf("config: REMINDER_WORKERS must be at least 1, got %d", c.Reminder.Workers)
	}
	if c.JWTSecret == "" && c.Env == "production" {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Process reads configuration from the given lookuper.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}
