package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/johntint/booking-service/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Pricing       PricingConfig       `toml:"pricing"`
	Stripe        StripeConfig        `toml:"stripe"`
	Notifications NotificationsConfig `toml:"notifications"`
	Admin         AdminConfig         `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PricingConfig общесервисные настройки ценообразования
// depositPercent и currency задаются на уровне деплоймента, не бронирования
type PricingConfig struct {
	DepositPercent int    `toml:"deposit_percent"`
	Currency       string `toml:"currency"`
}

// StripeConfig настройки платежного провайдера
type StripeConfig struct {
	SecretKey               string `toml:"secret_key"`
	WebhookSecret           string `toml:"webhook_secret"`
	WebhookToleranceSeconds int    `toml:"webhook_tolerance_seconds"`
	SuccessURL              string `toml:"success_url"`
	CancelURL               string `toml:"cancel_url"`
	DepositFlowEnabled      bool   `toml:"deposit_flow_enabled"`
}

// NotificationsConfig настройки исходящих email уведомлений
type NotificationsConfig struct {
	Enabled      bool   `toml:"enabled"`
	SMTPHost     string `toml:"smtp_host"`
	SMTPPort     int    `toml:"smtp_port"`
	SMTPUser     string `toml:"smtp_user"`
	SMTPPassword string `toml:"smtp_password"`
	From         string `toml:"from"`
	ShopEmail    string `toml:"shop_email"`
}

// AdminConfig настройки доступа администратора
// KeyHash - bcrypt-хэш админ-ключа; переменная окружения ADMIN_KEY
// используется как fallback для локальной разработки
type AdminConfig struct {
	KeyHash    string `toml:"key_hash"`
	PlainEnv   string `toml:"plain_env"` // имя env переменной с plaintext ключом
}

// Load загружает и валидирует конфигурацию из toml файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Pricing.DepositPercent < domain.MinDepositPercent || c.Pricing.DepositPercent > domain.MaxDepositPercent {
		return fmt.Errorf("config: pricing.deposit_percent must be in [%d,%d]",
			domain.MinDepositPercent, domain.MaxDepositPercent)
	}
	if c.Pricing.Currency == "" {
		return fmt.Errorf("config: pricing.currency is required")
	}
	if c.Stripe.DepositFlowEnabled && (c.Stripe.SecretKey == "" || c.Stripe.WebhookSecret == "") {
		return fmt.Errorf("config: stripe.secret_key and stripe.webhook_secret are required when deposit flow is enabled")
	}
	return nil
}
