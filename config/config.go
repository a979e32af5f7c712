package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Badge    BadgeConfig    `mapstructure:"badge"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres, sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// BadgeConfig 徽章引擎相关配置
type BadgeConfig struct {
	// StoreTimeout bounds the rehydration aggregation query.
	StoreTimeout time.Duration `mapstructure:"store_timeout"`
	// NotifyTTL is the suppression window for acquisition notifications.
	NotifyTTL time.Duration `mapstructure:"notify_ttl"`
	// ScanQueueSize bounds the async badge-scan queue.
	ScanQueueSize int `mapstructure:"scan_queue_size"`
	// ScanWorkers is the number of badge-scan workers.
	ScanWorkers int `mapstructure:"scan_workers"`
}

// AuthConfig 仅做令牌校验；签发属于外部系统
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint, empty disables tracing
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load 读取配置文件（可被环境变量覆盖，前缀 HEARTBADGE_）
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("HEARTBADGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 本地开发允许无配置文件，全部走默认值/环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("badge.store_timeout", 3*time.Second)
	v.SetDefault("badge.notify_ttl", 24*time.Hour)
	v.SetDefault("badge.scan_queue_size", 10000)
	v.SetDefault("badge.scan_workers", 4)
	v.SetDefault("auth.jwt_secret", "dev-secret")
	v.SetDefault("log.level", "info")
}
