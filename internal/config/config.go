// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultPort            = "8080"
	defaultWorkerCount     = 1
	defaultCORSOrigins     = "*"
	defaultProfileCacheTTL = 10 * time.Minute
)

// Config 服務啟動所需的設定，全部來自環境變數
type Config struct {
	Port            string
	DatabaseURL     string
	DatabaseReset   bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	NATSURL         string
	WorkerCount     int
	CORSOrigins     []string
	ProfileCacheTTL time.Duration
	LogLevel        string
	LogPretty       bool
}

var loadDotenv = func() error { return godotenv.Load() }

// Load 先嘗試讀取 .env，再從環境變數組出 Config
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	return FromEnv()
}

// FromEnv 只讀環境變數，不碰 .env
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		NATSURL:       os.Getenv("NATS_URL"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
	}

	var err error
	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	redisDB, err := required("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDB); err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.WorkerCount = defaultWorkerCount
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = n
	}

	cfg.ProfileCacheTTL = defaultProfileCacheTTL
	if v := os.Getenv("PROFILE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("無效的 PROFILE_CACHE_TTL: %q", v)
		}
		cfg.ProfileCacheTTL = d
	}

	if cfg.DatabaseReset, err = boolEnv("DATABASE_RESET"); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = boolEnv("LOG_PRETTY"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr echo 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func required(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

func boolEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return b, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
