package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	DBDriver string // sqlite | postgres
	DBPath   string
	DBDSN    string

	LogLevel  string
	LogFormat string
	AppName   string

	Media MediaConfig

	StatsCacheTTL   time.Duration
	ShutdownTimeout time.Duration
}

type MediaConfig struct {
	Driver      string // fs | s3
	FSRoot      string
	MaxUploadMB int64

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3AccessKey string
	S3SecretKey string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MediaFS = "fs"
	MediaS3 = "s3"
)

// Load lee config en este orden (el último gana): defaults, husbandry.yaml (opcional),
// .env (opcional) y variables de entorno.
func Load() (Config, error) {
	// .env es opcional en dev; si no existe seguimos con el entorno real.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("husbandry")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3001")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "animal_tracker.db")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "husbandry-tracker")
	v.SetDefault("MEDIA_DRIVER", MediaFS)
	v.SetDefault("MEDIA_FS_ROOT", "uploads")
	v.SetDefault("MEDIA_MAX_UPLOAD_MB", 50)
	v.SetDefault("MEDIA_S3_BUCKET", "")
	v.SetDefault("MEDIA_S3_REGION", "")
	v.SetDefault("MEDIA_S3_ENDPOINT", "")
	v.SetDefault("MEDIA_S3_PATH_STYLE", false)
	v.SetDefault("MEDIA_S3_ACCESS_KEY", "")
	v.SetDefault("MEDIA_S3_SECRET_KEY", "")
	v.SetDefault("STATS_CACHE_TTL", "5s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:      strings.TrimSpace(v.GetString("PORT")),
		DBDriver:  strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBPath:    strings.TrimSpace(v.GetString("DB_PATH")),
		DBDSN:     strings.TrimSpace(v.GetString("DB_DSN")),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		AppName:   v.GetString("APP_NAME"),
		Media: MediaConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("MEDIA_DRIVER"))),
			FSRoot:      strings.TrimSpace(v.GetString("MEDIA_FS_ROOT")),
			MaxUploadMB: v.GetInt64("MEDIA_MAX_UPLOAD_MB"),
			S3Bucket:    strings.TrimSpace(v.GetString("MEDIA_S3_BUCKET")),
			S3Region:    strings.TrimSpace(v.GetString("MEDIA_S3_REGION")),
			S3Endpoint:  strings.TrimSpace(v.GetString("MEDIA_S3_ENDPOINT")),
			S3PathStyle: v.GetBool("MEDIA_S3_PATH_STYLE"),
			S3AccessKey: strings.TrimSpace(v.GetString("MEDIA_S3_ACCESS_KEY")),
			S3SecretKey: strings.TrimSpace(v.GetString("MEDIA_S3_SECRET_KEY")),
		},
		StatsCacheTTL:   v.GetDuration("STATS_CACHE_TTL"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			return Config{}, errors.New("DB_PATH required for sqlite")
		}
	case DriverPostgres:
		if cfg.DBDSN == "" {
			return Config{}, errors.New("DB_DSN required for postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.Media.Driver {
	case MediaFS:
	case MediaS3:
		if cfg.Media.S3Bucket == "" {
			return Config{}, errors.New("MEDIA_S3_BUCKET required for s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.Media.Driver)
	}

	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	if cfg.Media.MaxUploadMB <= 0 {
		cfg.Media.MaxUploadMB = 50
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
