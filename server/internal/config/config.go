package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Visualizer VisualizerConfig
	Log        LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int
	Host            string
	MaxRequestBytes int64
	ShutdownTimeout time.Duration
}

// VisualizerConfig holds animation pacing for the WebSocket stream
type VisualizerConfig struct {
	StepDelay    time.Duration
	MaxStepDelay time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Debug bool
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			MaxRequestBytes: int64(getEnvInt("VIS_MAX_REQUEST_BYTES", 4096)),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Visualizer: VisualizerConfig{
			StepDelay:    time.Duration(getEnvInt("VIS_STEP_DELAY_MS", 300)) * time.Millisecond,
			MaxStepDelay: time.Duration(getEnvInt("VIS_MAX_STEP_DELAY_MS", 5000)) * time.Millisecond,
		},
		Log: LogConfig{
			Debug: getEnvBool("LOG_DEBUG", false),
		},
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ClampStepDelay turns a client-requested delay into one within bounds.
// Non-positive requests use the configured default.
func (c *VisualizerConfig) ClampStepDelay(requestedMS int) time.Duration {
	if requestedMS <= 0 {
		return c.StepDelay
	}
	d := time.Duration(requestedMS) * time.Millisecond
	if d > c.MaxStepDelay {
		return c.MaxStepDelay
	}
	return d
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`
Server: %s:%d (max request %d bytes)
Visualizer: step delay %v (max %v)
Debug logging: %v`,
		c.Server.Host, c.Server.Port, c.Server.MaxRequestBytes,
		c.Visualizer.StepDelay, c.Visualizer.MaxStepDelay,
		c.Log.Debug,
	)
}
