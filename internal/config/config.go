package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/davicafu/infopanel/internal/shared/infra/utils"
)

// Drivers admitidos.
const (
	StoreSQLite     = "sqlite"
	StorePostgres   = "postgres"
	StoreMongoDB    = "mongodb"
	StoreKafka      = "kafka"
	StoreClickHouse = "clickhouse"

	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

type Config struct {
	HTTPPort       string
	GRPCPort       string
	HealthInterval time.Duration
	LogLevel       string
	SQLitePath     string

	// Event store
	EventStore       string
	DatabaseURL      string
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaEventsTopic string
	ClickHouseAddr   string
	ClickHouseDB     string

	// Broadcast
	BroadcastDriver  string
	BroadcastChannel string
	RedisHost        string
	RedisPort        int
	RedisPassword    string
	RedisDB          int
	RedisMaxRequests int
	RedisPingTimeout time.Duration

	// Cache de lectura de módulos
	CacheDriver string
	CacheTTL    time.Duration
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
			return v
		}
		return fallback
	}

	broadcastDriver := strings.ToLower(getEnv("BROADCAST_DRIVER", DriverRedis))
	// Un umbral <= 0 desactivaría el reciclado; se normaliza al valor por defecto.
	maxRequests := getInt("REDIS_MAX_REQUESTS_PER_CONNECTION", 100)

	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		GRPCPort:       getEnv("GRPC_PORT", ""),
		HealthInterval: getDuration("HEALTH_INTERVAL", 10*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SQLitePath:     getEnv("SQLITE_PATH", "./infopanel.db"),

		EventStore:       strings.ToLower(getEnv("EVENT_STORE", StoreSQLite)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "infopanel"),
		KafkaBrokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaEventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "infopanel-domain-events"),
		ClickHouseAddr:   getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:     getEnv("CLICKHOUSE_DB", "default"),

		BroadcastDriver:  broadcastDriver,
		BroadcastChannel: getEnv("BROADCAST_CHANNEL", "infodisplay"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getInt("REDIS_PORT", 6379),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getInt("REDIS_DB", 0),
		RedisMaxRequests: utils.Ternary(maxRequests > 0, maxRequests, 100),
		RedisPingTimeout: getDuration("REDIS_PING_TIMEOUT", 2*time.Second),

		CacheDriver: strings.ToLower(getEnv("CACHE_DRIVER", utils.Ternary(broadcastDriver == DriverRedis, DriverRedis, DriverMemory))),
		CacheTTL:    getDuration("CACHE_TTL", time.Minute),
	}
}
