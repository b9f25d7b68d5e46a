package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lostfound-registry/internal/lifecycle"
	model "lostfound-registry/internal/models"
	"lostfound-registry/internal/scoring"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Log           LogConfig           `yaml:"log"`
	Matching      MatchingConfig      `yaml:"matching"`
	Auction       AuctionConfig       `yaml:"auction"`
	Notifications NotificationsConfig `yaml:"notifications"`
	// Permissions maps a role to the lifecycle edges it may take, written
	// as "FROM->TO". Empty means staff and admins may take every edge.
	Permissions map[string][]string `yaml:"permissions"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr is the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// MatchingConfig holds the match scoring tunables
type MatchingConfig struct {
	Threshold      float64         `yaml:"threshold"`
	NoiseThreshold float64         `yaml:"noise_threshold"`
	Workers        int             `yaml:"workers"`
	Weights        scoring.Weights `yaml:"weights"`
}

// AuctionConfig holds the auction scheduling tunables
type AuctionConfig struct {
	RetentionWindow time.Duration `yaml:"retention_window"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
}

// NotificationsConfig holds the notification dispatcher configuration.
// An empty NATSURL logs notifications instead of publishing them.
type NotificationsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
	BufferSize    int    `yaml:"buffer_size"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: 10 * time.Second},
		Log:    LogConfig{Level: "info"},
		Matching: MatchingConfig{
			Threshold:      30,
			NoiseThreshold: 1,
			Workers:        8,
			Weights:        scoring.DefaultWeights(),
		},
		Auction: AuctionConfig{
			RetentionWindow: 2 * 365 * 24 * time.Hour,
			SweepInterval:   time.Second,
		},
		Notifications: NotificationsConfig{SubjectPrefix: "lostfound", BufferSize: 1024},
	}
}

// Load reads configuration from a YAML file over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by CONFIG_PATH, or only defaults and
// environment overrides when it is unset.
func FromEnv() (*Config, error) {
	return Load(os.Getenv("CONFIG_PATH"))
}

func (c *Config) applyEnv() error {
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		c.Server.Port = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.Log.Level = lvl
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		c.Notifications.NATSURL = url
	}
	return nil
}

// Validate checks ranges and parses the permission table
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold > scoring.MaxScore {
		return fmt.Errorf("matching threshold %.2f outside [0, %.0f]", c.Matching.Threshold, scoring.MaxScore)
	}
	if c.Matching.Workers < 1 {
		return fmt.Errorf("matching workers must be at least 1, got %d", c.Matching.Workers)
	}
	if _, err := c.Scorer(); err != nil {
		return err
	}
	if c.Auction.RetentionWindow < 0 {
		return fmt.Errorf("negative retention window %s", c.Auction.RetentionWindow)
	}
	if c.Auction.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.Auction.SweepInterval)
	}
	if c.Notifications.BufferSize < 1 {
		return fmt.Errorf("notification buffer size must be at least 1, got %d", c.Notifications.BufferSize)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

// Scorer builds the match scorer from the matching section
func (c *Config) Scorer() (*scoring.Scorer, error) {
	s, err := scoring.New(c.Matching.Weights, c.Matching.NoiseThreshold)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Policy builds the role -> edge authorization table
func (c *Config) Policy() (*lifecycle.Policy, error) {
	if len(c.Permissions) == 0 {
		return lifecycle.DefaultPolicy(), nil
	}

	table := make(map[model.Role][]lifecycle.Edge, len(c.Permissions))
	for role, edges := range c.Permissions {
		for _, raw := range edges {
			e, err := lifecycle.ParseEdge(raw)
			if err != nil {
				return nil, fmt.Errorf("config: permissions for role %s: %w", role, err)
			}
			r := model.Role(strings.ToUpper(strings.TrimSpace(role)))
			table[r] = append(table[r], e)
		}
	}
	return lifecycle.NewPolicy(table), nil
}
