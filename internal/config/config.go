package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration struct for rolenav.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
}

// EngineConfig holds traversal and build resource knobs.
type EngineConfig struct {
	// Workers is the goroutine count for parallel queries. Zero means one
	// per CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// ForkThreshold is the subtree size below which parallel queries run
	// sequentially. Zero picks the engine default.
	ForkThreshold int `mapstructure:"fork_threshold" yaml:"fork_threshold"`
	// MaxDepth bounds snapshot nesting at build time.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
	// MaxChildren bounds per-node fanout at build time.
	MaxChildren int `mapstructure:"max_children" yaml:"max_children"`
	// Layout selects the arena flavor: "plain" or "counting".
	Layout string `mapstructure:"layout" yaml:"layout"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig holds the query server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"`
	ReadTimeout     string `mapstructure:"read_timeout"     yaml:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"    yaml:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Layout names accepted by EngineConfig.Layout.
const (
	LayoutPlain    = "plain"
	LayoutCounting = "counting"
)

// maxPort is the highest valid TCP port.
const maxPort = 65535

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("engine.workers must be non-negative")
	// ErrInvalidForkThreshold indicates the fork threshold is negative.
	ErrInvalidForkThreshold = errors.New("engine.fork_threshold must be non-negative")
	// ErrInvalidMaxDepth indicates the max depth is not positive.
	ErrInvalidMaxDepth = errors.New("engine.max_depth must be positive")
	// ErrInvalidMaxChildren indicates the max children is not positive.
	ErrInvalidMaxChildren = errors.New("engine.max_children must be positive")
	// ErrInvalidLayout indicates an unknown arena layout name.
	ErrInvalidLayout = errors.New(`engine.layout must be "plain" or "counting"`)
	// ErrInvalidLogLevel indicates an unknown logging level.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown logging format.
	ErrInvalidLogFormat = errors.New(`logging.format must be "text" or "json"`)
	// ErrInvalidPort indicates the server port is out of range.
	ErrInvalidPort = errors.New("server.port must be between 1 and 65535")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	engineErr := c.validateEngine()
	if engineErr != nil {
		return engineErr
	}

	loggingErr := c.validateLogging()
	if loggingErr != nil {
		return loggingErr
	}

	return c.validateServer()
}

func (c *Config) validateEngine() error {
	if c.Engine.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Engine.ForkThreshold < 0 {
		return ErrInvalidForkThreshold
	}

	if c.Engine.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}

	if c.Engine.MaxChildren <= 0 {
		return ErrInvalidMaxChildren
	}

	if c.Engine.Layout != LayoutPlain && c.Engine.Layout != LayoutCounting {
		return ErrInvalidLayout
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return ErrInvalidPort
	}

	return nil
}

// YAML renders the effective configuration, used by `rolenav config show`.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	return string(out), nil
}
