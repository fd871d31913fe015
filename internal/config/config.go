package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Feed     FeedConfig     `yaml:"feed"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	// URL is either a PostgreSQL connection string (postgres:// or
	// key=value form) or a SQLite file reference such as "file:zapit.db".
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Iface     string `yaml:"iface"`
	Port      int    `yaml:"port"`
	AssetsDir string `yaml:"assets_dir"`
}

// ListenAddr returns the address the HTTP server binds to.
func (s ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.Iface, s.Port)
}

type FeedConfig struct {
	// Domain is the public name used for channel and image links in the
	// rendered feed.
	Domain string `yaml:"domain"`
}

type RabbitMQConfig struct {
	// URL enables the submission-event publisher when non-empty.
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Load reads configuration from an optional YAML file (with environment
// variables expanded), applies environment overrides, and fills defaults.
// A missing config file is not an error: everything can come from the
// environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("LISTEN_IFACE"); v != "" {
		c.Server.Iface = v
	}
	if v := os.Getenv("LISTEN_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LISTEN_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DOMAIN"); v != "" {
		c.Feed.Domain = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Database.URL == "" {
		c.Database.URL = "file:zapit.db"
	}
	if c.Server.Iface == "" {
		c.Server.Iface = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.AssetsDir == "" {
		c.Server.AssetsDir = "assets"
	}
	if c.Feed.Domain == "" {
		c.Feed.Domain = "localhost"
	}
	if c.RabbitMQ.URL != "" {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "zapit"
		}
		if c.RabbitMQ.RoutingKey == "" {
			c.RabbitMQ.RoutingKey = "links"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "zapit_links"
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
