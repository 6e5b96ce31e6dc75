// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/despeckle-mcp/internal/cleaning"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Config holds the server-wide settings and the default cleaning parameters
// applied when a tool call omits them.
type Config struct {
	LogLevel string
	HTTPAddr string
	Defaults cleaning.Config
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Load reads the environment. Unset variables take their defaults; set but
// malformed numeric variables are an error.
func Load() (*Config, error) {
	def := cleaning.DefaultConfig()

	passes, err := getEnvInt("DESPECKLE_PASSES", def.Passes)
	if err != nil {
		return nil, err
	}
	threshold, err := getEnvInt("DESPECKLE_THRESHOLD", def.Threshold)
	if err != nil {
		return nil, err
	}
	minArea, err := getEnvInt("DESPECKLE_MIN_AREA", def.MinArea)
	if err != nil {
		return nil, err
	}

	variant, err := cleaning.ParseVariant(os.Getenv("DESPECKLE_VARIANT"))
	if err != nil {
		return nil, fmt.Errorf("config: DESPECKLE_VARIANT: %w", err)
	}
	polarity, err := cleaning.ParsePolarity(os.Getenv("DESPECKLE_POLARITY"))
	if err != nil {
		return nil, fmt.Errorf("config: DESPECKLE_POLARITY: %w", err)
	}

	def.Passes = passes
	def.Threshold = threshold
	def.MinArea = minArea
	def.Variant = variant
	def.Polarity = polarity
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{
		LogLevel: getEnv("DESPECKLE_MCP_LOG_LEVEL", "info"),
		HTTPAddr: getEnv("DESPECKLE_HTTP_ADDR", ":8080"),
		Defaults: def,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", raster.ErrInvalidParameter, key, val)
	}
	return n, nil
}
