package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           string `mapstructure:"SERVER_PORT"`
	RedisUrl             string `mapstructure:"REDIS_URL"`
	MongoUri             string `mapstructure:"MONGO_URI"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors          bool   `mapstructure:"LOCAL_CORS"`
	PageLimitTranscripts int    `mapstructure:"PAGE_LIMIT_TRANSCRIPTS"`
	CacheTTLSeconds      int    `mapstructure:"CACHE_TTL_SECONDS"`
	ReplayIntervalMs     int    `mapstructure:"REPLAY_INTERVAL_MS"`
}

var defaults = map[string]any{
	"SERVER_PORT":            "8080",
	"REDIS_URL":              "localhost:6379",
	"MONGO_URI":              "mongodb://localhost:27017",
	"MONGO_DATABASE":         "chess5d",
	"LOCAL_CORS":             false,
	"PAGE_LIMIT_TRANSCRIPTS": 20,
	"CACHE_TTL_SECONDS":      3600,
	"REPLAY_INTERVAL_MS":     500,
}

// Setup reads cfgPath (a .env file). A missing file is not an error: values
// then come from the environment and the defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) ReplayInterval() time.Duration {
	return time.Duration(c.ReplayIntervalMs) * time.Millisecond
}
