package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config содержит все настройки приложения Catalog Service
// Включает конфигурацию для HTTP сервера, PostgreSQL, Redis, Kafka и логирования
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host     string // Адрес хоста (по умолчанию 0.0.0.0)
	Port     string // Порт сервера (по умолчанию 8081)
	BasePath string // Префикс REST маршрутов, например /api (по умолчанию пустой)
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // disable/require/verify-full
	MaxConns int32  // Максимум соединений в пуле pgx
	MinConns int32  // Минимум открытых соединений
	Seed     bool   // Заполнять ли справочник категорий при старте
}

// RedisConfig - настройки Redis для кеширования списка категорий
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // Время жизни кеша категорий
}

// KafkaConfig - настройки Kafka для событий PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// LogConfig - уровень логирования и опциональный Logstash
type LogConfig struct {
	Level        string
	LogstashAddr string
}

// CORSConfig - разрешенные источники для SPA
type CORSConfig struct {
	AllowOrigins []string
}

// Load загружает конфигурацию из переменных окружения
// Дополнительно читает .env или config.env из рабочей директории, если они есть
// Переменные окружения имеют приоритет над файлом
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetString("SERVER_PORT"),
			BasePath: normalizeBasePath(v.GetString("SERVER_BASE_PATH")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
			Seed:     v.GetBool("DB_SEED"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_CATEGORIES_TTL"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("KAFKA_ENABLED"),
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Log: LogConfig{
			Level:        v.GetString("LOG_LEVEL"),
			LogstashAddr: v.GetString("LOGSTASH_ADDR"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8081")
	v.SetDefault("SERVER_BASE_PATH", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "product_management")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_SEED", true)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CATEGORIES_TTL", time.Hour)

	v.SetDefault("KAFKA_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "product_events")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOGSTASH_ADDR", "")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
}

func (c *Config) validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS: %d is greater than DB_MAX_CONNS %d", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Redis.DB < 0 || c.Redis.DB > 15 {
		return fmt.Errorf("invalid REDIS_DB value: %d", c.Redis.DB)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must not be empty when Kafka is enabled")
	}
	return nil
}

// DSN возвращает строку подключения к PostgreSQL в формате URL
// Пароль экранируется, поэтому допускает спецсимволы
func (c *DatabaseConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeBasePath приводит "api/", "/api/" и "/api" к "/api"; "/" и "" к ""
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
