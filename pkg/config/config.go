package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	PubSub PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRADELINK_APP_ENV" required:"true"`
	Port         string `envconfig:"TRADELINK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TRADELINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRADELINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"TRADELINK_DB_DSN"`

	Host     string `envconfig:"TRADELINK_DB_HOST"`
	Port     int    `envconfig:"TRADELINK_DB_PORT" default:"5432"`
	User     string `envconfig:"TRADELINK_DB_USER"`
	Password string `envconfig:"TRADELINK_DB_PASSWORD"`
	Name     string `envconfig:"TRADELINK_DB_NAME"`
	SSLMode  string `envconfig:"TRADELINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRADELINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRADELINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRADELINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRADELINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"TRADELINK_DB_AUTO_MIGRATE" default:"false"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name must be provided")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"TRADELINK_REDIS_URL"`
	Address      string        `envconfig:"TRADELINK_REDIS_ADDR"`
	Password     string        `envconfig:"TRADELINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRADELINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRADELINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRADELINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRADELINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRADELINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRADELINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PubSubConfig struct {
	ProjectID          string        `envconfig:"TRADELINK_PUBSUB_PROJECT_ID"`
	SupplierEventTopic string        `envconfig:"TRADELINK_PUBSUB_SUPPLIER_EVENT_TOPIC" default:"supplier-events"`
	PublishTimeout     time.Duration `envconfig:"TRADELINK_PUBSUB_PUBLISH_TIMEOUT" default:"10s"`
}
