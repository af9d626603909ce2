package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	JWT     JWTConfig
	Goods   GoodsConfig
	MySQL   MySQLConfig
	Redis   RedisConfig
	Draft   DraftConfig
	Upload  UploadConfig
	Session SessionConfig
}

type ServerConfig struct {
	AppEnv     string
	HTTPPort   string
	CORSOrigin string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type JWTConfig struct {
	SecretKey string
}

type GoodsConfig struct {
	APIURL  string
	Version string
	Timeout time.Duration
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DraftConfig struct {
	// Store is one of memory, redis or mysql.
	Store string
	TTL   time.Duration
}

type UploadConfig struct {
	// Backend is local or gcs.
	Backend         string
	Dir             string
	BaseURL         string
	GCSBucket       string
	CredentialsFile string
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:     getEnv("APP_ENV", "development"),
			HTTPPort:   getEnv("HTTP_PORT", ":8080"),
			CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
		},
		Goods: GoodsConfig{
			APIURL:  getEnv("GOODS_API_URL", "http://localhost:3000"),
			Version: getEnv("GOODS_API_VERSION", "v1"),
			Timeout: getEnvDuration("GOODS_API_TIMEOUT", 10*time.Second),
		},
		MySQL: MySQLConfig{
			DSN:             getEnv("DB_DSN_PRIMARY", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Draft: DraftConfig{
			Store: strings.ToLower(getEnv("DRAFT_STORE", "memory")),
			TTL:   getEnvDuration("DRAFT_TTL", 7*24*time.Hour),
		},
		Upload: UploadConfig{
			Backend:         strings.ToLower(getEnv("UPLOAD_BACKEND", "local")),
			Dir:             getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
			GCSBucket:       getEnv("GCS_BUCKET", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Session: SessionConfig{
			TTL:           getEnvDuration("SESSION_TTL", 2*time.Hour),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90s", "168h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
