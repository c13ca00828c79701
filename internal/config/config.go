package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the libpq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
}

// CatalogConfig locates the static product and service datasets.
type CatalogConfig struct {
	Source  string
	Timeout time.Duration
}

// SessionConfig controls visitor sessions.
type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	CookieName      string
	CookieSecure    bool
	// CookieMaxAge is how long the browser keeps the session cookie. The
	// cookie is re-issued on every request, so it outlives idle eviction of
	// the in-memory session and the visitor's persisted state stays reachable.
	CookieMaxAge time.Duration
}

// ServiceConfig holds all configuration for the storefront service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	StorageDriver string
	CORSOrigins   []string
	DBConfig      DatabaseConfig
	RedisConfig   RedisConfig
	KafkaConfig   KafkaConfig
	CatalogConfig CatalogConfig
	SessionConfig SessionConfig
}

// Load reads configuration from STOREFRONT_* environment variables and an
// optional config.yaml in the working directory or ./config.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a ServiceConfig from v, applying env bindings and defaults.
func FromViper(v *viper.Viper) (*ServiceConfig, error) {
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &ServiceConfig{
		Port:          ":" + strings.TrimPrefix(v.GetString("service_port"), ":"),
		AppEnv:        v.GetString("app_env"),
		StorageDriver: strings.ToLower(v.GetString("storage_driver")),
		CORSOrigins:   splitList(v.GetString("cors_origins")),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		RedisConfig: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
			TTL:       v.GetDuration("redis.ttl"),
		},
		KafkaConfig: KafkaConfig{
			Enabled: v.GetBool("kafka.enabled"),
			Brokers: splitList(v.GetString("kafka.brokers")),
		},
		CatalogConfig: CatalogConfig{
			Source:  v.GetString("catalog.source"),
			Timeout: v.GetDuration("catalog.timeout"),
		},
		SessionConfig: SessionConfig{
			TTL:             v.GetDuration("session.ttl"),
			CleanupInterval: v.GetDuration("session.cleanup_interval"),
			CookieName:      v.GetString("session.cookie_name"),
			CookieSecure:    v.GetBool("session.cookie_secure"),
			CookieMaxAge:    v.GetDuration("session.cookie_max_age"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *ServiceConfig) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.StorageDriver)
	}
	if c.KafkaConfig.Enabled && len(c.KafkaConfig.Brokers) == 0 {
		return errors.New("kafka is enabled but no brokers are configured")
	}
	if c.CatalogConfig.Source == "" {
		return errors.New("catalog source is required")
	}
	if c.SessionConfig.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.SessionConfig.CookieMaxAge < c.SessionConfig.TTL {
		return errors.New("session cookie max age must not be shorter than the session ttl")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("storage_driver", StorageMemory)
	v.SetDefault("cors_origins", "*")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "petflu_storefront")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "storefront:")
	v.SetDefault("redis.ttl", "0s")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")

	v.SetDefault("catalog.source", "./data")
	v.SetDefault("catalog.timeout", "10s")

	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cleanup_interval", "10m")
	v.SetDefault("session.cookie_name", "petflu_session")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("session.cookie_max_age", "8760h")
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
