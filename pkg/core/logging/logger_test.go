package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/radscene/foundation/core/log"
	"github.com/msto63/radscene/pkg/core/config"
)

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "test-service" {
		t.Errorf("Name() = %v, want test-service", logger.Name())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test")
	result := logger.WithLevel(mdwlog.LevelDebug)

	if result.GetLevel() != mdwlog.LevelDebug {
		t.Errorf("level = %v, want debug", result.GetLevel())
	}
	if result.name != "test" {
		t.Errorf("name should be preserved: got %v", result.name)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"trace", mdwlog.LevelTrace},
		{"debug", mdwlog.LevelDebug},
		{"INFO", mdwlog.LevelInfo},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"", mdwlog.LevelInfo},
		{"invalid", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("radscene")

	if cfg.ServiceName != "radscene" {
		t.Errorf("ServiceName = %v, want radscene", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestConfigFromGeneral(t *testing.T) {
	cfg := ConfigFromGeneral("radscene", config.GeneralConfig{LogLevel: "debug", LogFormat: "json"})
	if cfg.Level != "debug" || cfg.Format != "json" {
		t.Errorf("ConfigFromGeneral() = %+v", cfg)
	}

	cfg = ConfigFromGeneral("radscene", config.GeneralConfig{})
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("empty section should keep defaults, got %+v", cfg)
	}
}

func TestNewLogger_JSONWithRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(LoggerConfig{
		ServiceName: "radscene",
		Level:       "debug",
		Format:      "json",
		Output:      buf,
		RequestID:   "req-42",
	})

	logger.Debug("reading sources")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", decoded["request_id"])
	}
	if decoded["logger"] != "radscene" {
		t.Errorf("logger = %v, want radscene", decoded["logger"])
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	primary, extra := &bytes.Buffer{}, &bytes.Buffer{}
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Format:            "logfmt",
		Output:            primary,
		AdditionalOutputs: []io.Writer{extra},
	})

	logger.Info("scene parsed")

	if !strings.Contains(primary.String(), "scene parsed") || primary.String() != extra.String() {
		t.Errorf("outputs differ: %q vs %q", primary.String(), extra.String())
	}
}

func TestNewLogger_UnknownFormatFallsBackToText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(LoggerConfig{Format: "xml", Output: buf, Level: "info"})
	logger.Info("hello")

	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("expected text layout, got %q", buf.String())
	}
}

func TestLogger_KeyValues(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Wrap(NewLogger(LoggerConfig{Format: "json", Output: buf, Level: "debug"}), "store")

	logger.With("run_id", "abc").Info("run saved", "records", 12, "orphan")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if decoded["run_id"] != "abc" || decoded["records"] != float64(12) {
		t.Errorf("fields = %v", decoded)
	}
	if decoded["logger"] != "store" {
		t.Errorf("logger = %v, want store", decoded["logger"])
	}
	if _, ok := decoded["orphan"]; ok {
		t.Error("trailing key without value should be dropped")
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(mdwlog.Discard(), "benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
