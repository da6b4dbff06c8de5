package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.Pdftoppm != "pdftoppm" || cfg.Tesseract != "tesseract" {
		t.Errorf("OCR binary defaults not set: %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"zero max file size", func(c *Config) { c.MaxFileSize = 0 }, true},
		{"negative dpi", func(c *Config) { c.OCRDPI = -1 }, true},
		{"negative max pages", func(c *Config) { c.OCRMaxPages = -1 }, true},
		{"zero ocr timeout", func(c *Config) { c.OCRTimeoutSeconds = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "0.0.0.0"
	cfg.Port = 9090

	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Errorf("Address() = %q, want %q", got, "0.0.0.0:9090")
	}
}

func TestConfigOCRTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCRTimeoutSeconds = 30

	if got := cfg.OCRTimeout(); got != 30*time.Second {
		t.Errorf("OCRTimeout() = %v, want 30s", got)
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("info level should not be debug")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("debug level should report IsDebug")
	}
}
