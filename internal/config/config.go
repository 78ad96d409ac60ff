// Package config отвечает за загрузку и валидацию конфигурации приложения
// из YAML файла с переопределением через переменные окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

// Имена окружений.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "production"
)

// Config описывает корневую структуру конфигурации сервиса.
type Config struct {
	Env             string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Version         string `yaml:"version" env-default:"1.0.0"`
	FrontendURL     string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	SMTP            `yaml:"smtp"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Security        `yaml:"security"`
	RateLimit       `yaml:"rate_limit"`
}

// Storage содержит параметры подключения к PostgreSQL.
type Storage struct {
	StorageConnectionString string        `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	MaxOpenConns            int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns            int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime         time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

// HTTPServer содержит настройки HTTP сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":7000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection содержит настройки клиента Redis.
// Пустой адрес отключает кэш и лимитер запросов на auth маршрутах.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

// RabbitMQ содержит настройки брокера. Пустой URL отключает публикацию писем сброса пароля.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP содержит настройки исходящей почты для mailer.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"EMAIL_HOST" env-default:"smtp.gmail.com"`
	SMTPPort string `yaml:"port" env:"EMAIL_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"EMAIL_USER"`
	SMTPPass string `yaml:"pass" env:"EMAIL_PASS"`
}

// JWTToken содержит настройки JWT токенов.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_EXPIRE" env-default:"168h"`
}

// Security содержит настройки работы с учетными данными.
type Security struct {
	BcryptCost    int           `yaml:"bcrypt_cost" env-default:"12"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env-default:"1h"`
	// StrictBearer отключает прием токена в заголовке Authorization без префикса Bearer.
	StrictBearer bool `yaml:"strict_bearer" env:"AUTH_STRICT_BEARER"`
}

// RateLimit содержит настройки ограничения частоты запросов.
type RateLimit struct {
	GlobalRPS   float64       `yaml:"global_rps" env-default:"100"`
	GlobalBurst int           `yaml:"global_burst" env-default:"200"`
	AuthMax     int           `yaml:"auth_max" env-default:"10"`
	AuthWindow  time.Duration `yaml:"auth_window" env-default:"1m"`
}

// MustLoad загружает конфигурацию по пути из CONFIG_PATH.
// Завершает процесс, если файл отсутствует или конфигурация некорректна.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

// Load читает и валидирует конфигурацию из файла path.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет, что сервис может стартовать с текущими настройками.
func (c *Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		errs = append(errs, fmt.Errorf("unknown env %q, expected one of %s, %s, %s", c.Env, EnvLocal, EnvDev, EnvProd))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("jwt secret key is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.ResetTokenTTL <= 0 {
		errs = append(errs, errors.New("reset token ttl must be positive"))
	}
	if c.StorageConnectionString == "" {
		errs = append(errs, errors.New("storage connection string is required"))
	}
	return errors.Join(errs...)
}

// IsProduction сообщает, запущен ли сервис в production окружении.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}

// String возвращает конфигурацию в читаемом виде со скрытыми секретами.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  ConnectionString: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Security:\n"+
			"  BcryptCost: %d\n"+
			"  ResetTokenTTL: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		mask(c.RabbitMQURL),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.BcryptCost,
		c.ResetTokenTTL,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
