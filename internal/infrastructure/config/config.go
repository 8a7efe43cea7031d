package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection parameters for the offer
// catalog store.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// KafkaConfig holds Kafka connection parameters.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// EngineConfig holds the decision-engine tunables: the simulation horizon
// and the credit-score range the catalog treats as valid input.
type EngineConfig struct {
	HorizonMonths int
	ScoreMin      int
	ScoreMax      int
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Engine      EngineConfig
	JWTSecret   string
	ServiceName string
}

// Load reads configuration from environment variables with development
// defaults.
func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9095),
		HTTPPort: getEnvInt("HTTP_PORT", 8095),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "consolidation"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "consolidation"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "consolidation.events"),
		},
		Engine: EngineConfig{
			HorizonMonths: getEnvInt("SIM_HORIZON_MONTHS", 600),
			ScoreMin:      getEnvInt("SCORE_MIN", 300),
			ScoreMax:      getEnvInt("SCORE_MAX", 850),
		},
		JWTSecret:   getEnv("JWT_SECRET", ""),
		ServiceName: "consolidation-service",
	}
}

// GRPCAddr returns the gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddr returns the HTTP listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
