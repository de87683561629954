package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWritesToRotatingFile(t *testing.T) {
	configDir := t.TempDir()

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	Warn("rollover reset", "user", "hunter_99", "days_passed", 3)

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "hard75.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "rollover reset") {
		t.Errorf("log file missing message, got %q", content)
	}
	if !strings.Contains(content, "hunter_99") {
		t.Errorf("log file missing key/value pair, got %q", content)
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"default warns", Config{}, "warn"},
		{"console informs", Config{Console: true}, "info"},
		{"debug wins", Config{Console: true, Debug: true}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ConfigDir = t.TempDir()
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			if got := Logger.GetLevel().String(); got != tt.want {
				t.Errorf("level = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	With("component", "test").Info("discarded")
}
