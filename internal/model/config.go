package model

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Frontend selects which window shell hosts the launcher.
type Frontend string

// Frontend values
const (
	FrontendAuto Frontend = "auto"
	FrontendGUI  Frontend = "gui"
	FrontendTUI  Frontend = "tui"
)

// Config holds the launcher settings read from the environment
type Config struct {
	Executable string   // Executable to run on each activation
	Frontend   Frontend // Window shell to use
	ShowStderr bool     // Also display captured stderr
	LogLevel   string   // zap level name
	LogFile    string   // Log destination, empty for the frontend default
}

// LoadConfigFromEnv loads configuration from SSLAUNCH_* environment variables
func LoadConfigFromEnv() (*Config, error) {
	showStderr, err := getEnvBool("SSLAUNCH_SHOW_STDERR", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Executable: getEnv("SSLAUNCH_EXECUTABLE", DefaultExecutable),
		Frontend:   Frontend(strings.ToLower(getEnv("SSLAUNCH_FRONTEND", string(FrontendAuto)))),
		ShowStderr: showStderr,
		LogLevel:   strings.ToLower(getEnv("SSLAUNCH_LOG_LEVEL", "info")),
		LogFile:    getEnv("SSLAUNCH_LOG_FILE", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Executable) == "" {
		return fmt.Errorf("SSLAUNCH_EXECUTABLE must not be empty")
	}

	switch c.Frontend {
	case FrontendAuto, FrontendGUI, FrontendTUI:
	default:
		return fmt.Errorf("invalid SSLAUNCH_FRONTEND %q: want auto, gui or tui", c.Frontend)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid SSLAUNCH_LOG_LEVEL %q: want debug, info, warn or error", c.LogLevel)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
