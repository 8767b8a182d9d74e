package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. Values come from
// the environment so deployments stay twelve-factor; godotenv covers loading a
// local .env in development.
type Config struct {
	Addr       string
	AdminToken string

	DatabaseURL string

	Redis RedisConfig

	Summary SummaryConfig

	KafkaBrokers    []string
	KafkaAuditTopic string
}

// RedisConfig mirrors the go-redis client options we care about.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SummaryConfig configures the AI summary provider and its cache.
type SummaryConfig struct {
	OpenAIKey string
	Model     string
	CacheTTL  time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("PARAPET_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cfg := Config{
		Addr:        addr,
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Summary: SummaryConfig{
			OpenAIKey: os.Getenv("OPENAI_API_KEY"),
			Model:     os.Getenv("SUMMARY_MODEL"),
			CacheTTL:  envDuration("SUMMARY_CACHE_TTL", 15*time.Minute),
		},
		KafkaAuditTopic: os.Getenv("KAFKA_AUDIT_TOPIC"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.KafkaAuditTopic == "" {
		cfg.KafkaAuditTopic = "parapet.audit"
	}

	return cfg
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
