package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например RESERVATION_DATABASE_HOST или RESERVATION_BOOKING_AUTO_APPROVE
const EnvPrefix = "RESERVATION"

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Slots         SlotsConfig         `toml:"slots"`
	Booking       BookingConfig       `toml:"booking"`
	Completion    CompletionConfig    `toml:"completion"`
	Notifications NotificationsConfig `toml:"notifications"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit" split_words:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | sqlite
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл sqlite
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

type SlotsConfig struct {
	OpenHour     int    `toml:"open_hour" split_words:"true"`
	CloseHour    int    `toml:"close_hour" split_words:"true"`
	WidthMinutes int    `toml:"width_minutes" split_words:"true"`
	Timezone     string `toml:"timezone"`
}

// ToDomain строит доменную конфигурацию слотов
func (s SlotsConfig) ToDomain() (domain.SlotConfig, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return domain.SlotConfig{}, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	cfg := domain.SlotConfig{
		OpenHour:     s.OpenHour,
		CloseHour:    s.CloseHour,
		WidthMinutes: s.WidthMinutes,
		Location:     loc,
	}
	return cfg, cfg.Validate()
}

type BookingConfig struct {
	AutoApprove        bool `toml:"auto_approve" split_words:"true"`
	AdvanceBookingDays int  `toml:"advance_booking_days" split_words:"true"` // 0 = без ограничения
	MaxPurposeLength   int  `toml:"max_purpose_length" split_words:"true"`
}

type CompletionConfig struct {
	Enabled   bool `toml:"enabled"`
	Interval  int  `toml:"interval"` // секунды
	BatchSize int  `toml:"batch_size" split_words:"true"`
}

type NotificationsConfig struct {
	Driver         string `toml:"driver"` // log | amqp | webhook
	URL            string `toml:"url"`
	Exchange       string `toml:"exchange"`
	QueueSize      int    `toml:"queue_size" split_words:"true"`
	Workers        int    `toml:"workers"`
	PublishTimeout int    `toml:"publish_timeout" split_words:"true"` // секунды
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled  bool `toml:"enabled"`
	Requests int  `toml:"requests"`
	Window   int  `toml:"window"` // секунды
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "data/reservations.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		Slots: SlotsConfig{
			OpenHour:     domain.DefaultOpenHour,
			CloseHour:    domain.DefaultCloseHour,
			WidthMinutes: domain.DefaultSlotWidthMinutes,
			Timezone:     "UTC",
		},
		Booking: BookingConfig{
			AdvanceBookingDays: domain.DefaultAdvanceBookingDays,
			MaxPurposeLength:   domain.MaxPurposeLength,
		},
		Completion: CompletionConfig{
			Enabled:   true,
			Interval:  300,
			BatchSize: 100,
		},
		Notifications: NotificationsConfig{
			Driver:         "log",
			Exchange:       "reservations",
			QueueSize:      256,
			Workers:        2,
			PublishTimeout: 5,
		},
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   60,
		},
	}
}

// Load читает конфигурацию из TOML файла и переопределяет её переменными окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("%w: database.driver must be postgres or sqlite, got %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
	}

	if _, err := c.Slots.ToDomain(); err != nil {
		return fmt.Errorf("%w: slots: %v", ErrInvalidConfig, err)
	}

	if c.Booking.AdvanceBookingDays < 0 || c.Booking.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: booking.advance_booking_days out of range", ErrInvalidConfig)
	}

	if c.Booking.MaxPurposeLength <= 0 {
		return fmt.Errorf("%w: booking.max_purpose_length must be positive", ErrInvalidConfig)
	}

	switch c.Notifications.Driver {
	case "log":
	case "amqp", "webhook":
		if c.Notifications.URL == "" {
			return fmt.Errorf("%w: notifications.url is required for %s", ErrInvalidConfig, c.Notifications.Driver)
		}
	default:
		return fmt.Errorf("%w: notifications.driver must be log, amqp or webhook, got %q", ErrInvalidConfig, c.Notifications.Driver)
	}

	if c.Notifications.QueueSize <= 0 || c.Notifications.Workers <= 0 {
		return fmt.Errorf("%w: notifications.queue_size and notifications.workers must be positive", ErrInvalidConfig)
	}

	if c.Completion.Enabled && (c.Completion.Interval <= 0 || c.Completion.BatchSize <= 0) {
		return fmt.Errorf("%w: completion.interval and completion.batch_size must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when rate_limit is enabled", ErrInvalidConfig)
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("%w: rate_limit.requests and rate_limit.window must be positive", ErrInvalidConfig)
		}
	}

	return nil
}
