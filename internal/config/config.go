package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	ServerPort string
	RedisURL   string
	Env        string
	RedisTTL   time.Duration

	SessionTTL time.Duration
	BcryptCost int

	// Feed policy. HotReplyWeight encodes how many views one reply is
	// worth when scoring trending posts; HotWindow bounds how old a post
	// may be and still trend.
	HotWindow      time.Duration
	HotReplyWeight int

	PageSize      int
	RecentLimit   int
	TrendingLimit int
	SearchLimit   int
}

func LoadConfig() Config {
	redisTTL := getEnvAsDuration("REDIS_TTL", 5*time.Minute)
	sessionTTL := getEnvAsDuration("SESSION_TTL", 30*24*time.Hour)
	hotWindow := getEnvAsDuration("HOT_WINDOW", 7*24*time.Hour)

	return Config{
		DBHost:         getEnv("DB_HOST", "postgres"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPass:         getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "db_winntalks"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		RedisURL:       getEnv("REDIS_URL", "redis:6379"),
		Env:            getEnv("ENV", "dev"),
		RedisTTL:       redisTTL,
		SessionTTL:     sessionTTL,
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
		HotWindow:      hotWindow,
		HotReplyWeight: getEnvAsInt("HOT_REPLY_WEIGHT", 3),
		PageSize:       getEnvAsInt("PAGE_SIZE", 20),
		RecentLimit:    getEnvAsInt("RECENT_LIMIT", 30),
		TrendingLimit:  getEnvAsInt("TRENDING_LIMIT", 10),
		SearchLimit:    getEnvAsInt("SEARCH_LIMIT", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
