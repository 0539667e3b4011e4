package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация приложения
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Storage        StorageConfig        `toml:"storage"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	Kafka          KafkaConfig          `toml:"kafka"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Tracing        TracingConfig        `toml:"tracing"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Workers        WorkersConfig        `toml:"workers"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver string     `toml:"driver"` // postgres | memory
	Tanks  []TankSeed `toml:"tanks"`  // начальный инвентарь для memory
}

// TankSeed камера, загружаемая в in-memory инвентарь при старте
type TankSeed struct {
	ID         string `toml:"id"`
	LocationID string `toml:"location_id"`
	Name       string `toml:"name"`
	Status     string `toml:"status"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения в формате postgres:// для golang-migrate
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// RedisConfig настройки Redis (хранилище ключей идемпотентности)
type RedisConfig struct {
	Enabled           bool   `toml:"enabled"`
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	IdempotencyTTLSec int    `toml:"idempotency_ttl"`
}

// KafkaConfig настройки публикации событий
type KafkaConfig struct {
	Enabled bool   `toml:"enabled"`
	Brokers string `toml:"brokers"` // через запятую
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// SchedulingConfig настройки расписания
type SchedulingConfig struct {
	Timezone string `toml:"timezone"` // IANA, например Europe/Moscow
}

// Location часовой пояс локаций
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CatalogServiceConfig настройки каталога услуг
// Если URL не задан, длительности берутся из StaticServices
type CatalogServiceConfig struct {
	URL            string         `toml:"url"`
	Timeout        int            `toml:"timeout"` // секунды
	StaticServices map[string]int `toml:"static_services"`
}

// WorkersConfig настройки фоновых задач (интервалы в секундах)
type WorkersConfig struct {
	ExpiryInterval  int `toml:"expiry_interval"`
	ExpiryBatchSize int `toml:"expiry_batch_size"`
	OutboxInterval  int `toml:"outbox_interval"`
	OutboxBatchSize int `toml:"outbox_batch_size"`
}

// Load читает .env (если есть), TOML файл и переменные окружения
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "float_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxRetries:    3,
		},
		Redis: RedisConfig{
			Addr:              "localhost:6379",
			IdempotencyTTLSec: 24 * 60 * 60,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "float_booking"},
		Tracing: TracingConfig{SampleRatio: 1},
		Scheduling: SchedulingConfig{
			Timezone: "UTC",
		},
		CatalogService: CatalogServiceConfig{Timeout: 5},
		Workers: WorkersConfig{
			ExpiryInterval:  60,
			ExpiryBatchSize: 100,
			OutboxInterval:  2,
			OutboxBatchSize: 50,
		},
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setString(&cfg.Tracing.OTLPEndpoint, "OTLP_ENDPOINT")
	setString(&cfg.CatalogService.URL, "CATALOG_SERVICE_URL")
	setString(&cfg.Scheduling.Timezone, "SCHEDULING_TIMEZONE")

	if err := setInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for postgres storage"))
		}
	case StorageDriverMemory:
		for i, t := range c.Storage.Tanks {
			if t.ID == "" || t.LocationID == "" {
				errs = append(errs, fmt.Errorf("storage.tanks[%d]: id and location_id are required", i))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Kafka.Enabled && strings.TrimSpace(c.Kafka.Brokers) == "" {
		errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		errs = append(errs, errors.New("tracing.otlp_endpoint is required when tracing is enabled"))
	}
	if _, err := c.Scheduling.Location(); err != nil {
		errs = append(errs, fmt.Errorf("scheduling.timezone: %w", err))
	}
	if c.CatalogService.URL == "" && len(c.CatalogService.StaticServices) == 0 {
		errs = append(errs, errors.New("catalog_service.url or catalog_service.static_services must be set"))
	}
	for id, minutes := range c.CatalogService.StaticServices {
		if minutes <= 0 {
			errs = append(errs, fmt.Errorf("catalog_service.static_services.%s must be positive", id))
		}
	}

	return errors.Join(errs...)
}
