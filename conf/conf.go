// Package conf loads the server configuration from an ini file.
//
//	[server]
//	addr = 0.0.0.0:80
//	workers = 5
//	queue_limit = 0
//	max_header_bytes = 1048576
//	read_timeout = 0s
//	sleep_delay = 5s
//
//	[resources]
//	dir = static
//
//	[log]
//	level = info
//	file =
//
// Every key is optional. Values may reference the environment as ${VAR||default}.
package conf

import (
	"fmt"
	"time"

	"github.com/astaxie/beego/config"
)

type Config struct {
	Addr           string
	Workers        int
	QueueLimit     int
	MaxHeaderBytes int64
	ReadTimeout    time.Duration
	SleepDelay     time.Duration

	ResourceDir string

	LogLevel string
	LogFile  string
}

// Default matches the behavior of the server when no configuration file is given.
func Default() Config {
	return Config{
		Addr:           "0.0.0.0:80",
		Workers:        5,
		MaxHeaderBytes: 1 << 20,
		SleepDelay:     5 * time.Second,
		ResourceDir:    "static",
		LogLevel:       "info",
	}
}

// Load reads the ini file at filename.
func Load(filename string) (Config, error) {
	c, err := config.NewConfig("ini", filename)
	if err != nil {
		return Config{}, fmt.Errorf("conf: %w", err)
	}
	return fromConfiger(c)
}

// Parse reads ini data.
func Parse(data []byte) (Config, error) {
	c, err := config.NewConfigData("ini", data)
	if err != nil {
		return Config{}, fmt.Errorf("conf: %w", err)
	}
	return fromConfiger(c)
}

func fromConfiger(c config.Configer) (Config, error) {
	cfg := Default()

	cfg.Addr = c.DefaultString("server::addr", cfg.Addr)
	cfg.Workers = c.DefaultInt("server::workers", cfg.Workers)
	cfg.QueueLimit = c.DefaultInt("server::queue_limit", cfg.QueueLimit)
	cfg.MaxHeaderBytes = c.DefaultInt64("server::max_header_bytes", cfg.MaxHeaderBytes)
	cfg.ResourceDir = c.DefaultString("resources::dir", cfg.ResourceDir)
	cfg.LogLevel = c.DefaultString("log::level", cfg.LogLevel)
	cfg.LogFile = c.DefaultString("log::file", cfg.LogFile)

	var err error
	if cfg.ReadTimeout, err = duration(c, "server::read_timeout", cfg.ReadTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SleepDelay, err = duration(c, "server::sleep_delay", cfg.SleepDelay); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func duration(c config.Configer, key string, def time.Duration) (time.Duration, error) {
	s := c.String(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("conf: %s: %w", key, err)
	}
	return d, nil
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("conf: server::addr is empty")
	case c.Workers <= 0:
		return fmt.Errorf("conf: server::workers must be positive, got %d", c.Workers)
	case c.QueueLimit < 0:
		return fmt.Errorf("conf: server::queue_limit must not be negative, got %d", c.QueueLimit)
	case c.MaxHeaderBytes <= 0:
		return fmt.Errorf("conf: server::max_header_bytes must be positive, got %d", c.MaxHeaderBytes)
	case c.ReadTimeout < 0 || c.SleepDelay < 0:
		return fmt.Errorf("conf: durations must not be negative")
	}
	return nil
}
