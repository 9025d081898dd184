package config

import (
	"time"

	"github.com/spf13/viper"
)

type Redis struct {
	// Is the shared state mirrored to Redis
	Enabled bool

	Port     uint16
	Host     string
	User     string
	Password string
	DB       int

	// Channel state changes are published to
	ChannelName string

	// TLS configuration
	ClientKey  string
	ClientCert string
	CaCert     string

	// Connection configuration
	MinIdleConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	// Publish backoff configuration, 0 is no limit
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration
}

func setRedisDefaults() {
	viper.SetDefault("Redis.Enabled", "false")
	viper.SetDefault("Redis.Port", 6379)
	viper.SetDefault("Redis.Host", "localhost")
	viper.SetDefault("Redis.User", "")
	viper.SetDefault("Redis.Password", "")
	viper.SetDefault("Redis.DB", 0)
	viper.SetDefault("Redis.ChannelName", "dao.state")
	viper.SetDefault("Redis.MinIdleConns", 1)
	viper.SetDefault("Redis.MaxIdleConns", 5)
	viper.SetDefault("Redis.ConnMaxIdleTime", "10m")
	viper.SetDefault("Redis.MaxOpenConns", 15)
	viper.SetDefault("Redis.ConnMaxLifetime", "1h")
	viper.SetDefault("Redis.MaxElapsedTime", "1m")
	viper.SetDefault("Redis.MaxInterval", "10s")
}
