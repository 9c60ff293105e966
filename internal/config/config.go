package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`
	// MySQL holds credentials and the notification inbox
	Database DatabaseConfig `json:"database"`
	// MongoDB holds accounts, friend requests and friendships
	MongoDB      MongoDBConfig      `json:"mongodb"`
	Auth         AuthConfig         `json:"auth"`
	Relationship RelationshipConfig `json:"relationship"`
	Notification NotificationConfig `json:"notification"`
	Kafka        KafkaConfig        `json:"kafka"`
	Telemetry    TelemetryConfig    `json:"telemetry"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	GRPCPort     string        `json:"grpc_port"`
	HTTPPort     string        `json:"http_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	Environment  string        `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	ReplicaSet string `json:"replica_set"` // transactions and change streams need one
}

type AuthConfig struct {
	JWTSecret string        `json:"-"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// RelationshipConfig tunes the relationship manager
type RelationshipConfig struct {
	SearchLimit     int `json:"search_limit"`
	FriendListLimit int `json:"friend_list_limit"` // 0 means unbounded
	// CountBothSides increments friendCount on the requester too. Off by
	// default: only the accepting account is counted.
	CountBothSides bool `json:"count_both_sides"`
}

// NotificationConfig contains notification system configuration
type NotificationConfig struct {
	Enabled           bool `json:"enabled"`
	Workers           int  `json:"workers"`             // Number of worker goroutines
	ChannelBufferSize int  `json:"channel_buffer_size"` // Channel buffer size
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled"`
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
}

type TelemetryConfig struct {
	ServiceName   string `json:"service_name"`
	TraceExporter string `json:"trace_exporter"` // otlp, stdout, none
	OTLPEndpoint  string `json:"otlp_endpoint"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", ""),
			GRPCPort:     getEnv("GRPC_PORT", "7001"),
			HTTPPort:     getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "planetpal"),
			Password:     getEnv("MYSQL_PASSWORD", "planetpal123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "planetpal"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:       getEnv("MONGO_HOST", "localhost"),
			Port:       getEnv("MONGO_PORT", "27017"),
			Username:   getEnv("MONGO_USERNAME", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Database:   getEnv("MONGO_DATABASE", "planetpal"),
			ReplicaSet: getEnv("MONGO_REPLICA_SET", "rs0"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me"),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Relationship: RelationshipConfig{
			SearchLimit:     getEnvAsInt("SEARCH_LIMIT", 20),
			FriendListLimit: getEnvAsInt("FRIEND_LIST_LIMIT", 0),
			CountBothSides:  getEnvAsBool("FRIEND_COUNT_BOTH_SIDES", false),
		},
		Notification: NotificationConfig{
			Enabled:           getEnvAsBool("NOTIFICATIONS_ENABLED", true),
			Workers:           getEnvAsInt("NOTIFICATION_WORKERS", 5),
			ChannelBufferSize: getEnvAsInt("NOTIFICATION_BUFFER", 1000),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvAsBool("KAFKA_ENABLED", false),
			Brokers: getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "relationship-notifications"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:   getEnv("OTEL_SERVICE_NAME", "planetpal"),
			TraceExporter: getEnv("OTEL_TRACES_EXPORTER", "none"),
			OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	m := cfg.MongoDB
	var uri string
	if m.Username != "" && m.Password != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin", m.Username, m.Password, m.Host, m.Port, m.Database)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%s/%s", m.Host, m.Port, m.Database)
	}
	if m.ReplicaSet != "" {
		sep := "?"
		if strings.Contains(uri, "?") {
			sep = "&"
		}
		uri += sep + "replicaSet=" + m.ReplicaSet
	}
	return uri
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
