package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != "csv" {
		t.Errorf("Expected default format to be 'csv', got '%s'", cfg.Format)
	}

	if cfg.Region != "BRCO" {
		t.Errorf("Expected default region to be 'BRCO', got '%s'", cfg.Region)
	}

	if cfg.RecordType != "ALJR" {
		t.Errorf("Expected default record type to be 'ALJR', got '%s'", cfg.RecordType)
	}

	if cfg.Status != "Record Status" {
		t.Errorf("Expected default status to be 'Record Status', got '%s'", cfg.Status)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	currentDir, _ := os.Getwd()
	if cfg.MsgDirectory != filepath.Join(currentDir, "emails") {
		t.Errorf("Expected default message folder under the working directory, got '%s'", cfg.MsgDirectory)
	}
}

func validTestConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		MsgDirectory:    dir,
		PDFDirectory:    filepath.Join(dir, "pdfs"),
		OutputDirectory: filepath.Join(dir, "out"),
		Format:          "csv",
		Region:          "BRCO",
		RecordType:      "ALJR",
		Status:          "Record Status",
		LogLevel:        "info",
		MaxFileSize:     1024,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "valid config - xlsx",
			mutate:  func(c *Config) { c.Format = "xlsx" },
			wantErr: false,
		},
		{
			name:    "missing message folder",
			mutate:  func(c *Config) { c.MsgDirectory = filepath.Join(c.MsgDirectory, "missing") },
			wantErr: true,
		},
		{
			name:    "empty message folder path",
			mutate:  func(c *Config) { c.MsgDirectory = "" },
			wantErr: true,
		},
		{
			name:    "empty PDF folder path",
			mutate:  func(c *Config) { c.PDFDirectory = "" },
			wantErr: true,
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Format = "parquet" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "non-positive max file size",
			mutate:  func(c *Config) { c.MaxFileSize = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCreatesOutputFolders(t *testing.T) {
	cfg := validTestConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	for _, dir := range []string{cfg.PDFDirectory, cfg.OutputDirectory} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Expected folder %s to be created, got error: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cfg := validTestConfig(t)

	got := cfg.OutputPath("2023-04-18_12-00-00")
	want := filepath.Join(cfg.OutputDirectory, "ALJR to LEX 2023-04-18_12-00-00.csv")
	if got != want {
		t.Errorf("OutputPath() = %s, want %s", got, want)
	}

	cfg.Format = "xlsx"
	if !strings.HasSuffix(cfg.OutputPath("ts"), ".xlsx") {
		t.Errorf("Expected xlsx extension, got %s", cfg.OutputPath("ts"))
	}
}

func TestIsDebug(t *testing.T) {
	cfg := validTestConfig(t)
	if cfg.IsDebug() {
		t.Error("Expected IsDebug() to be false at info level")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("Expected IsDebug() to be true at debug level")
	}
}
