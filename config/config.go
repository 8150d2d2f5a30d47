package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Log       LogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration
	// SecureCookies marks the session cookie Secure; on by default in production.
	SecureCookies bool
}

type DatabaseConfig struct {
	Driver          string // mysql | sqlite
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type LogConfig struct {
	Level  string
	Format string // json | text
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LocalSize     int
	StatusTTL     time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// Public code issuance is abuse-prone; it gets its own tighter bucket.
	IssueRequestsPerSecond float64
	IssueBurst             int
	// IdleTimeout drops the bucket of a client not seen for this long.
	IdleTimeout time.Duration
}

// Load reads .env files when present, then builds the config from defaults
// overridden by environment variables.
func Load() *Config {
	_ = godotenv.Load(".env")

	env := getEnv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8099"),
			Env:             env,
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			SecureCookies:   getBool("SECURE_COOKIES", env == "production"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			DSN:             getEnv("DB_DSN", "gymref:gymref@tcp(localhost:3306)/gymref?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 12*time.Hour),
			RefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        getEnv("JWT_ISSUER", "gymref"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Cache: CacheConfig{
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getInt("REDIS_DB", 0),
			LocalSize:     getInt("CACHE_LOCAL_SIZE", 10000),
			StatusTTL:     getDuration("CACHE_STATUS_TTL", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:      getFloat("RATE_LIMIT_RPS", 5),
			Burst:                  getInt("RATE_LIMIT_BURST", 20),
			IssueRequestsPerSecond: getFloat("RATE_LIMIT_ISSUE_RPS", 0.5),
			IssueBurst:             getInt("RATE_LIMIT_ISSUE_BURST", 5),
			IdleTimeout:            getDuration("RATE_LIMIT_IDLE_TIMEOUT", 10*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
