package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Worker        workerConfig `yaml:"worker" mapstructure:"worker"`
}

type workerConfig struct {
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`
}

func TestServiceConfigDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("development should enable debug")
	}
	if cfg.Logging.ServiceName != "svc" {
		t.Errorf("service name should propagate into logging, got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults applied, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	cfg := ServiceConfig{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	cfg.Name = "svc"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Environment = "qa"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid environment")
	}

	cfg.Environment = "production"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid logging level")
	}
}

func TestLoadFromExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := []byte("name: loaded-svc\nenvironment: staging\nworker:\n  parallelism: 7\n")
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := Load("loaded-svc", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "loaded-svc" || cfg.Environment != "staging" {
		t.Errorf("base config not loaded: %+v", cfg.ServiceConfig)
	}
	if cfg.Worker.Parallelism != 7 {
		t.Errorf("nested section not loaded: %+v", cfg.Worker)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SKRY_TEST_MARKER=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SKRY_TEST_MARKER") })

	var cfg testConfig
	if err := Load("svc", &cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if os.Getenv("SKRY_TEST_MARKER") != "loaded" {
		t.Error("expected .env file to be loaded into the environment")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	var cfg testConfig
	if err := Load("svc", &cfg, WithConfigFile("/nonexistent/config.yml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
