package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("SOURCE_PATH", "testdata/people.csv")
	defer os.Unsetenv("SOURCE_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Table.DefaultPageSize != 25 {
		t.Errorf("Table.DefaultPageSize = %d, want 25", cfg.Table.DefaultPageSize)
	}
	if cfg.Source.FetchTimeout != 30*time.Second {
		t.Errorf("Source.FetchTimeout = %v, want %v", cfg.Source.FetchTimeout, 30*time.Second)
	}
	if cfg.Auth.GateEnabled() {
		t.Error("gate should be disabled when AUTH_PASSWORD is unset")
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want 100", cfg.Rate.RequestsPerMinute)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("SOURCE_PATH", "testdata/people.csv")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("TABLE_DEFAULT_PAGE_SIZE", "50")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SOURCE_PATH")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("TABLE_DEFAULT_PAGE_SIZE")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Table.DefaultPageSize != 50 {
		t.Errorf("Table.DefaultPageSize = %d, want 50", cfg.Table.DefaultPageSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	os.Setenv("SOURCE_URL", "https://example.com/data.csv")
	defer os.Unsetenv("SOURCE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source.Location != "https://example.com/data.csv" {
		t.Errorf("Source.Location = %q, want SOURCE_URL value", cfg.Source.Location)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("SOURCE_PATH")
	os.Unsetenv("SOURCE_URL")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing SOURCE_PATH")
	}
}

func TestLoad_PageSizeOptions(t *testing.T) {
	os.Setenv("SOURCE_PATH", "testdata/people.csv")
	os.Setenv("TABLE_PAGE_SIZE_OPTIONS", "5, 25 ,500")
	defer func() {
		os.Unsetenv("SOURCE_PATH")
		os.Unsetenv("TABLE_PAGE_SIZE_OPTIONS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []int{5, 25, 500}
	if len(cfg.Table.PageSizeOptions) != len(want) {
		t.Fatalf("PageSizeOptions = %v, want %v", cfg.Table.PageSizeOptions, want)
	}
	for i, v := range want {
		if cfg.Table.PageSizeOptions[i] != v {
			t.Errorf("PageSizeOptions[%d] = %d, want %d", i, cfg.Table.PageSizeOptions[i], v)
		}
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_DefaultPageSizeMustBeOption(t *testing.T) {
	cfg := validConfig()
	cfg.Table.DefaultPageSize = 33

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for page size not in options")
	}
	if !strings.Contains(err.Error(), "TABLE_DEFAULT_PAGE_SIZE") {
		t.Errorf("error should mention TABLE_DEFAULT_PAGE_SIZE: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Password = "hunter2"

	str := cfg.String()
	if strings.Contains(str, "hunter2") {
		t.Error("String() should mask the gate password")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: 30 * time.Second},
		Source: SourceConfig{Location: "testdata/people.csv", FetchTimeout: 30 * time.Second},
		Auth:   AuthConfig{SessionTTL: 12 * time.Hour},
		Table:  TableConfig{DefaultPageSize: 25, PageSizeOptions: []int{10, 25, 50, 100}},
		Rate:   RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
