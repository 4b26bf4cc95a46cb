// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Режимы источника изменений каталога.
const (
	ChangeFeedPostgres = "postgres"
	ChangeFeedRabbitMQ = "rabbitmq"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                `yaml:"rabbitmq"`
	Entitlement             `yaml:"entitlement"`
	Catalog                 `yaml:"catalog"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// OpenRateLimit допустимое число переходов к курсу в секунду.
	OpenRateLimit float64 `yaml:"open_rate_limit" env-default:"5"`
	OpenRateBurst int     `yaml:"open_rate_burst" env-default:"10"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RabbitMQ структура для подключения к брокеру событий каталога.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"2s"`
}

// Entitlement структура для настройки проверки доступа к платным курсам.
type Entitlement struct {
	EntitlementURL string        `yaml:"url" env:"ENTITLEMENT_URL" env-required:"true"`
	CheckTimeout   time.Duration `yaml:"timeout" env-default:"5s"`
	// FailClosed: при сбое проверки вести на страницу оплаты вместо страницы курса.
	FailClosed bool          `yaml:"fail_closed" env:"ENTITLEMENT_FAIL_CLOSED"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// Catalog структура для настройки синхронизации каталога.
type Catalog struct {
	ChangeFeed     string `yaml:"change_feed" env:"CATALOG_CHANGE_FEED" env-default:"postgres"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	// RelayNotify: при change_feed rabbitmq пересылать NOTIFY из Postgres
	// в брокер как course.changed. Без него лента видит только изменения,
	// сделанные через этот сервис.
	RelayNotify bool `yaml:"relay_notify" env:"CATALOG_RELAY_NOTIFY" env-default:"true"`
}

// MustLoad функция для загрузки конфига, путь к файлу берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения и проверяет его.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ChangeFeed {
	case ChangeFeedPostgres:
	case ChangeFeedRabbitMQ:
		if c.RabbitMQURL == "" {
			return fmt.Errorf("rabbitmq_url is required for change_feed %q", c.ChangeFeed)
		}
	default:
		return fmt.Errorf("unknown change_feed %q", c.ChangeFeed)
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("entitlement timeout must be positive")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Entitlement:\n"+
			"  URL: %s\n"+
			"  Timeout: %s\n"+
			"  FailClosed: %t\n"+
			"Catalog:\n"+
			"  ChangeFeed: %s\n",
		c.Env,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.EntitlementURL,
		c.CheckTimeout,
		c.FailClosed,
		c.ChangeFeed,
	)
}
