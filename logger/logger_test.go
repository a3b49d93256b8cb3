package logger

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("timestamps should default on")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg = Config{Level: "debug", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNewWithInvalidLevelFallsBack(t *testing.T) {
	log := New(Config{Level: "verbose", Format: "json"}, "test")
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	// Exercise the paths; output is format-checked by zerolog itself.
	log.WithComponent("di").Debug("registered", Fields("token", "x"))
	log.WithFields(map[string]interface{}{"k": "v"}).Info("msg")
	log.WithError(nil).Warn("msg")
}

func TestNopLoggerDiscards(t *testing.T) {
	log := Nop()
	log.Info("this should vanish")
	log.Error("and this")
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected lazily created global logger")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected the custom global logger")
	}
}

func TestFieldsHelpers(t *testing.T) {
	m := Fields("a", 1, "b", "two")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}

	// Odd trailing value is ignored.
	m = Fields("a", 1, "dangling")
	if len(m) != 1 {
		t.Errorf("expected dangling key to be dropped: %v", m)
	}

	ef := ErrorFields("save", errTest{})
	if ef[FieldOperation] != "save" || ef[FieldError] != "test error" {
		t.Errorf("unexpected error fields: %v", ef)
	}

	df := DurationFields("load", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration fields: %v", df)
	}
}

type errTest struct{}

func (errTest) Error() string { return "test error" }
