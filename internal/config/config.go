package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	BackendHTTP  = "http"
	BackendRedis = "redis"
	BackendFile  = "file"
	BackendNone  = "none"
)

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	Backend     string        `yaml:"backend"`
	ServerURL   string        `yaml:"server_url"`
	Timeout     time.Duration `yaml:"timeout"`
	SaveTimeout time.Duration `yaml:"save_timeout"`
	StatePath   string        `yaml:"state_path"`
	Profile     string        `yaml:"profile"`
	Redis       RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:     BackendHTTP,
			ServerURL:   "http://127.0.0.1:5000/pomodoro",
			Timeout:     10 * time.Second,
			SaveTimeout: 5 * time.Second,
			Profile:     "default",
			Redis: RedisConfig{
				Addr: "127.0.0.1:6379",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return cfg, cfg.Validate()
}

// Validate checks the store selection.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendHTTP:
		if strings.TrimSpace(c.Store.ServerURL) == "" {
			return errors.New("store.server_url is required for the http backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis backend")
		}
	case BackendFile, BackendNone:
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = 10 * time.Second
	}
	if c.Store.SaveTimeout <= 0 {
		c.Store.SaveTimeout = 5 * time.Second
	}
	return nil
}
