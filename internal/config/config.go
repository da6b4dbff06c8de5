package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 25 * 1024 * 1024 // 25MB upload cap

	DefaultOCRDPI     = 300
	DefaultOCRTimeout = 120 // seconds
)

// Config holds all configuration for the applicant parser service.
type Config struct {
	// Server configuration
	Host string
	Port int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum upload size in bytes

	// OCR fallback configuration
	Pdftoppm          string // rasterizer binary, name or absolute path
	Tesseract         string // OCR binary, name or absolute path
	OCRLang           string
	OCRDPI            int
	OCRMaxPages       int // 0 = no limit
	OCRTimeoutSeconds int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		Version:           "1.0.0",
		ServerName:        "applicant-parser",
		LogLevel:          DefaultLogLevel,
		MaxFileSize:       DefaultMaxFileSize,
		Pdftoppm:          "pdftoppm",
		Tesseract:         "tesseract",
		OCRLang:           "eng",
		OCRDPI:            DefaultOCRDPI,
		OCRMaxPages:       0,
		OCRTimeoutSeconds: DefaultOCRTimeout,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PARSER")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("pdftoppm", cfg.Pdftoppm)
	viper.SetDefault("tesseract", cfg.Tesseract)
	viper.SetDefault("ocrlang", cfg.OCRLang)
	viper.SetDefault("ocrdpi", cfg.OCRDPI)
	viper.SetDefault("ocrmaxpages", cfg.OCRMaxPages)
	viper.SetDefault("ocrtimeout", cfg.OCRTimeoutSeconds)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum upload size in bytes")
	pflag.String("pdftoppm", cfg.Pdftoppm, "Path to the pdftoppm binary")
	pflag.String("tesseract", cfg.Tesseract, "Path to the tesseract binary")
	pflag.String("ocrlang", cfg.OCRLang, "Tesseract language")
	pflag.Int("ocrdpi", cfg.OCRDPI, "Rasterization DPI for the OCR fallback")
	pflag.Int("ocrmaxpages", cfg.OCRMaxPages, "Maximum pages to OCR (0 = no limit)")
	pflag.Int("ocrtimeout", cfg.OCRTimeoutSeconds, "OCR stage timeout in seconds")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("pdftoppm", pflag.Lookup("pdftoppm"))
	_ = viper.BindPFlag("tesseract", pflag.Lookup("tesseract"))
	_ = viper.BindPFlag("ocrlang", pflag.Lookup("ocrlang"))
	_ = viper.BindPFlag("ocrdpi", pflag.Lookup("ocrdpi"))
	_ = viper.BindPFlag("ocrmaxpages", pflag.Lookup("ocrmaxpages"))
	_ = viper.BindPFlag("ocrtimeout", pflag.Lookup("ocrtimeout"))
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Pdftoppm = viper.GetString("pdftoppm")
	cfg.Tesseract = viper.GetString("tesseract")
	cfg.OCRLang = viper.GetString("ocrlang")
	cfg.OCRDPI = viper.GetInt("ocrdpi")
	cfg.OCRMaxPages = viper.GetInt("ocrmaxpages")
	cfg.OCRTimeoutSeconds = viper.GetInt("ocrtimeout")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.OCRDPI <= 0 {
		return errors.New("OCR DPI must be positive")
	}

	if c.OCRMaxPages < 0 {
		return errors.New("OCR max pages cannot be negative")
	}

	if c.OCRTimeoutSeconds <= 0 {
		return errors.New("OCR timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OCRTimeout returns the OCR stage timeout as a duration.
func (c *Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host: %s, Port: %d, LogLevel: %s, MaxFileSize: %d, OCRDPI: %d}",
		c.Host, c.Port, c.LogLevel, c.MaxFileSize, c.OCRDPI)
}
