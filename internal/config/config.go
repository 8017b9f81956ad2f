package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config groups the runtime configuration, read from environment variables
// via Viper with non-production defaults.
type Config struct {
	ServerHost string
	ServerPort string

	DBDialect  string // "postgres" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	// JWTSecret signs bearer tokens. The default is a stub for local and
	// test use only; production deployments must set the JWT env var.
	JWTSecret string

	// RabbitMQURL enables catalog event publishing when non-empty.
	RabbitMQURL string
}

// Load reads configuration from the environment.
func Load() Config {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_DIALECT", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "catalog")
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("JWT", "stubJWT")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return Config{
		ServerHost:  viper.GetString("SERVER_HOST"),
		ServerPort:  viper.GetString("SERVER_PORT"),
		DBDialect:   viper.GetString("DB_DIALECT"),
		DBHost:      viper.GetString("DB_HOST"),
		DBPort:      viper.GetString("DB_PORT"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),
		SQLitePath:  viper.GetString("SQLITE_PATH"),
		JWTSecret:   viper.GetString("JWT"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}

// ListenAddr returns the host:port pair for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN builds the connection string for the postgres dialect.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
