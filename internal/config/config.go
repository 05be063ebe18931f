package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultFormat      = "csv"
	DefaultRegion      = "BRCO"
	DefaultRecordType  = "ALJR"
	DefaultStatus      = "Record Status"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for one conversion run.
type Config struct {
	// Input/output locations
	MsgDirectory    string
	PDFDirectory    string
	OutputDirectory string

	// Output configuration
	Format     string // "csv" or "xlsx"
	Region     string
	RecordType string
	Status     string

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF attachment size in bytes
}

// DefaultConfig returns a configuration with sensible defaults rooted in
// the current working directory.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		MsgDirectory:    filepath.Join(currentDir, "emails"),
		PDFDirectory:    filepath.Join(currentDir, "extracted-pdfs"),
		OutputDirectory: currentDir,
		Format:          DefaultFormat,
		Region:          DefaultRegion,
		RecordType:      DefaultRecordType,
		Status:          DefaultStatus,
		Version:         "1.0.0",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
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

	for _, dir := range []*string{&cfg.MsgDirectory, &cfg.PDFDirectory, &cfg.OutputDirectory} {
		if expanded, err := filepath.Abs(*dir); err == nil {
			*dir = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("ALJR2LEX")
	viper.AutomaticEnv()

	viper.SetDefault("msgdir", cfg.MsgDirectory)
	viper.SetDefault("pdfdir", cfg.PDFDirectory)
	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("region", cfg.Region)
	viper.SetDefault("rectype", cfg.RecordType)
	viper.SetDefault("status", cfg.Status)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("msgdir", cfg.MsgDirectory, "Folder containing the .msg email files")
	pflag.String("pdfdir", cfg.PDFDirectory, "Folder where PDF attachments are saved")
	pflag.String("outdir", cfg.OutputDirectory, "Folder where the output record set is written")
	pflag.String("format", cfg.Format, "Output format: 'csv' or 'xlsx'")
	pflag.String("region", cfg.Region, "Region constant written to every record")
	pflag.String("rectype", cfg.RecordType, "Record type constant written to every record")
	pflag.String("status", cfg.Status, "Status placeholder written to every record")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF attachment size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"msgdir", "pdfdir", "outdir", "format", "region",
		"rectype", "status", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.MsgDirectory = viper.GetString("msgdir")
	cfg.PDFDirectory = viper.GetString("pdfdir")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.Format = viper.GetString("format")
	cfg.Region = viper.GetString("region")
	cfg.RecordType = viper.GetString("rectype")
	cfg.Status = viper.GetString("status")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid. The message folder must
// already exist; the PDF and output folders are created on demand.
func (c *Config) Validate() error {
	if c.MsgDirectory == "" {
		return errors.New("message folder cannot be empty")
	}
	info, err := os.Stat(c.MsgDirectory)
	if os.IsNotExist(err) {
		return fmt.Errorf("message folder does not exist: %s", c.MsgDirectory)
	}
	if err != nil {
		return fmt.Errorf("cannot access message folder %s: %w", c.MsgDirectory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("message folder is not a directory: %s", c.MsgDirectory)
	}

	for _, dir := range []string{c.PDFDirectory, c.OutputDirectory} {
		if dir == "" {
			return errors.New("output folders cannot be empty")
		}
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create folder %s: %w", dir, err)
		}
	}

	if c.Format != "csv" && c.Format != "xlsx" {
		return fmt.Errorf("invalid output format: %s (must be 'csv' or 'xlsx')", c.Format)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
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

// OutputPath returns the output file path for a run started at the given
// timestamp.
func (c *Config) OutputPath(timestamp string) string {
	name := fmt.Sprintf("ALJR to LEX %s.%s", timestamp, c.Format)
	return filepath.Join(c.OutputDirectory, name)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{MsgDirectory: %s, PDFDirectory: %s, OutputDirectory: %s, Format: %s, LogLevel: %s, MaxFileSize: %d}",
		c.MsgDirectory, c.PDFDirectory, c.OutputDirectory, c.Format, c.LogLevel, c.MaxFileSize)
}
