package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	AppName                       string   `mapstructure:"APP_NAME"`
	Port                          int      `mapstructure:"PORT"`
	LogLevel                      string   `mapstructure:"LOG_LEVEL"`
	PrettyLogs                    bool     `mapstructure:"PRETTY_LOGS"`
	HttpServerWriteTimeoutSeconds int      `mapstructure:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS"`
	HttpServerReadTimeoutSeconds  int      `mapstructure:"HTTP_SERVER_READ_TIMEOUT_SECONDS"`
	HttpServerIdleTimeoutSeconds  int      `mapstructure:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS"`
	MaxBodySize                   string   `mapstructure:"HTTP_SERVER_MAX_BODY_SIZE"`
	AllowOrigins                  []string `mapstructure:"HTTP_SERVER_ALLOW_ORIGINS"`
	StartupMaxAttempts            int      `mapstructure:"STARTUP_MAX_ATTEMPTS"`
	TracingEnabled                bool     `mapstructure:"TRACING_ENABLED"`

	// Database host; an empty host runs the service without persistence
	DatabaseHost string `mapstructure:"DB_HOST"`
	// Database port
	DatabasePort string `mapstructure:"DB_PORT"`
	// Database user
	DatabaseUserName string `mapstructure:"DB_USER_NAME"`
	// Database user password
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	// Database name
	DatabaseName string `mapstructure:"DB_NAME"`
	// Database SSL mode
	DatabaseSSLMode string `mapstructure:"DB_SSL_MODE"`
	// Max Open Conns
	DatabaseMaxOpenConns int `mapstructure:"DB_MAX_OPEN_CONNS"`
	// Max Idle Conns
	DatabaseMaxIdleConns int `mapstructure:"DB_MAX_IDLE_CONNS"`
	// Conn Max Lifetime
	DatabaseConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	// Migration Folder Path
	DatabaseMigrationFolderPath string `mapstructure:"DB_MIGRATION_FOLDER_PATH"`
	// Database Migration Version
	DatabaseMigrationVersion int `mapstructure:"DB_MIGRATION_VERSION"`
	// Database Migration Force
	DatabaseMigrationForce int `mapstructure:"DB_MIGRATION_FORCE"`
	// Database Migration Auto Rollback
	DatabaseMigrationAutoRollback bool `mapstructure:"DB_MIGRATION_AUTO_ROLLBACK"`

	// Redis; an empty host disables the shared cache
	RedisHost     string        `mapstructure:"REDIS_HOST"`
	RedisPort     int           `mapstructure:"REDIS_PORT"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	RedisCacheTTL time.Duration `mapstructure:"REDIS_CACHE_TTL"`

	// Kafka Consumer
	KafkaBrokers         []string `mapstructure:"KAFKA_BROKERS"`
	KafkaInputTopic      string   `mapstructure:"KAFKA_INPUT_TOPIC"`
	KafkaConsumerGroup   string   `mapstructure:"KAFKA_CONSUMER_GROUP"`
	KafkaOutputTopic     string   `mapstructure:"KAFKA_OUTPUT_TOPIC"`
	KafkaErrorTopic      string   `mapstructure:"KAFKA_ERROR_TOPIC"`
	KafkaConsumerEnabled bool     `mapstructure:"KAFKA_CONSUMER_ENABLED"`

	// Kafka Producer
	KafkaBatchSize    int    `mapstructure:"KAFKA_BATCH_SIZE"`
	KafkaBatchTimeout int    `mapstructure:"KAFKA_BATCH_TIMEOUT_MS"`
	KafkaRequiredAcks int    `mapstructure:"KAFKA_REQUIRED_ACKS"`
	KafkaCompression  string `mapstructure:"KAFKA_COMPRESSION"`

	// Processor
	ProcessorWorkerCount    int `mapstructure:"PROCESSOR_WORKER_COUNT"`
	ProcessorTimeoutSeconds int `mapstructure:"PROCESSOR_TIMEOUT_SECONDS"`
	StepCacheMaxSize        int `mapstructure:"STEP_CACHE_MAX_SIZE"`
	StepCacheTTLSeconds     int `mapstructure:"STEP_CACHE_TTL_SECONDS"`
}

// Load reads .env files (when present) and the environment into a Config.
// Unset variables fall back to the defaults below.
func Load(envFiles ...string) (Config, error) {
	var cfg Config

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// a missing .env is normal outside local development
		_ = godotenv.Load(file)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToIntHook,
		stringToListHook,
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "fern-api")
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRETTY_LOGS", false)
	v.SetDefault("HTTP_SERVER_WRITE_TIMEOUT_SECONDS", 10)
	v.SetDefault("HTTP_SERVER_READ_TIMEOUT_SECONDS", 10)
	v.SetDefault("HTTP_SERVER_IDLE_TIMEOUT_SECONDS", 10)
	v.SetDefault("HTTP_SERVER_MAX_BODY_SIZE", "10M")
	v.SetDefault("HTTP_SERVER_ALLOW_ORIGINS", "*")
	v.SetDefault("STARTUP_MAX_ATTEMPTS", 5)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER_NAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "fern")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "10s")
	v.SetDefault("DB_MIGRATION_FOLDER_PATH", "db/pg")
	v.SetDefault("DB_MIGRATION_VERSION", 0)
	v.SetDefault("DB_MIGRATION_FORCE", 0)
	v.SetDefault("DB_MIGRATION_AUTO_ROLLBACK", true)
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", "1h")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_INPUT_TOPIC", "bake-requests")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "fern-consumer")
	v.SetDefault("KAFKA_OUTPUT_TOPIC", "baked-rows")
	v.SetDefault("KAFKA_ERROR_TOPIC", "bake-errors")
	v.SetDefault("KAFKA_CONSUMER_ENABLED", false)
	v.SetDefault("KAFKA_BATCH_SIZE", 100)
	v.SetDefault("KAFKA_BATCH_TIMEOUT_MS", 100)
	v.SetDefault("KAFKA_REQUIRED_ACKS", 1)
	v.SetDefault("KAFKA_COMPRESSION", "snappy")
	v.SetDefault("PROCESSOR_WORKER_COUNT", 4)
	v.SetDefault("PROCESSOR_TIMEOUT_SECONDS", 30)
	v.SetDefault("STEP_CACHE_MAX_SIZE", 1000)
	v.SetDefault("STEP_CACHE_TTL_SECONDS", 300)
}

// stringToIntHook parses decimal integers, ignoring surrounding space.
func stringToIntHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	return strconv.Atoi(strings.TrimSpace(data.(string)))
}

// stringToListHook splits comma separated values and drops empty entries.
func stringToListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}

	parts := []string{}
	for _, part := range strings.Split(data.(string), ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts, nil
}

// DatabaseEnabled reports whether a database host is configured.
func (c Config) DatabaseEnabled() bool {
	return c.DatabaseHost != ""
}

// RedisEnabled reports whether a redis host is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// DatabaseURL is the postgres connection string.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUserName, c.DatabasePassword, c.DatabaseHost, c.DatabasePort, c.DatabaseName, c.DatabaseSSLMode)
}
