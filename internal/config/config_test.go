package config

import (
	"errors"
	"testing"

	"github.com/ironsheep/despeckle-mcp/internal/cleaning"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

var envKeys = []string{
	"DESPECKLE_MCP_LOG_LEVEL",
	"DESPECKLE_HTTP_ADDR",
	"DESPECKLE_PASSES",
	"DESPECKLE_THRESHOLD",
	"DESPECKLE_MIN_AREA",
	"DESPECKLE_VARIANT",
	"DESPECKLE_POLARITY",
}

// clearEnv blanks every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %s, want info", cfg.LogLevel)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr: got %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.Defaults != cleaning.DefaultConfig() {
		t.Errorf("Defaults: got %+v, want %+v", cfg.Defaults, cleaning.DefaultConfig())
	}
	if cfg.Debug() {
		t.Error("Debug should be false by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESPECKLE_MCP_LOG_LEVEL", "debug")
	t.Setenv("DESPECKLE_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DESPECKLE_PASSES", "3")
	t.Setenv("DESPECKLE_THRESHOLD", "2")
	t.Setenv("DESPECKLE_MIN_AREA", "10")
	t.Setenv("DESPECKLE_VARIANT", "closing_only")
	t.Setenv("DESPECKLE_POLARITY", "light_on_dark")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug() {
		t.Error("Debug should be true")
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("HTTPAddr: got %s", cfg.HTTPAddr)
	}
	want := cleaning.Config{
		Passes:    3,
		Threshold: 2,
		MinArea:   10,
		Variant:   cleaning.ClosingOnly,
		Polarity:  cleaning.LightOnDark,
	}
	if cfg.Defaults != want {
		t.Errorf("Defaults: got %+v, want %+v", cfg.Defaults, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"DESPECKLE_PASSES", "many"},
		{"DESPECKLE_PASSES", "0"},
		{"DESPECKLE_THRESHOLD", "-1"},
		{"DESPECKLE_MIN_AREA", "1.5"},
		{"DESPECKLE_VARIANT", "opening"},
		{"DESPECKLE_POLARITY", "sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if !errors.Is(err, raster.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
