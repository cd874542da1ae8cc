// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, formatters, context fields, coded
//              error logging and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial logger tests
// - 2026-10-19 v0.2.0: Merged level, format and timer tests into one file

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	mdwerror "github.com/msto63/radscene/foundation/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	})
	return logger, buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"audit", LevelAudit, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "text", "console", "logfmt"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")
	logger.Audit("always")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level messages written: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "always") {
		t.Errorf("expected warn and audit messages, got %q", out)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)
	logger = logger.WithField("component", "rad-parser").WithRequestID("req-1")

	logger.Info("scene parsed", Fields{"records": 3})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	checks := map[string]interface{}{
		"message":    "scene parsed",
		"level":      "info",
		"logger":     "test",
		"component":  "rad-parser",
		"request_id": "req-1",
		"records":    float64(3),
	}
	for k, want := range checks {
		if decoded[k] != want {
			t.Errorf("%s = %v, want %v", k, decoded[k], want)
		}
	}
}

func TestLogger_TextFieldsSorted(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)
	logger.Info("msg", Fields{"zeta": 1, "alpha": 2})

	out := buf.String()
	if !strings.Contains(out, "[alpha=2 zeta=1]") {
		t.Errorf("fields not sorted: %q", out)
	}
	if !strings.Contains(out, "[INF] {test} msg") {
		t.Errorf("unexpected layout: %q", out)
	}
}

func TestLogger_WithDoesNotMutate(t *testing.T) {
	base, buf := newBufferLogger(FormatLogfmt, LevelInfo)
	_ = base.WithField("extra", "x")

	base.Info("plain")
	if strings.Contains(buf.String(), "extra") {
		t.Errorf("WithField mutated the receiver: %q", buf.String())
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  string
	}{
		{"plain error", errors.New("boom"), "error", ""},
		{"low severity", mdwerror.New("bad format").WithCode(mdwerror.CodeInvalidFormat), "info", "INVALID_FORMAT"},
		{"medium severity", mdwerror.New("watch").WithCode(mdwerror.CodeWatchError), "warn", "WATCH_ERROR"},
		{"high severity", mdwerror.New("db").WithCode(mdwerror.CodeStoreError), "error", "STORE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(FormatJSON, LevelTrace)
			logger.LogError(tt.err)

			var decoded map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if decoded["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", decoded["level"], tt.wantLevel)
			}
			if tt.wantCode != "" && decoded["error_code"] != tt.wantCode {
				t.Errorf("error_code = %v, want %v", decoded["error_code"], tt.wantCode)
			}
		})
	}

	logger, buf := newBufferLogger(FormatJSON, LevelTrace)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(FormatLogfmt, LevelDebug)

	timer := logger.StartTimer("read_sources").WithField("files", 2)
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Errorf("elapsed = %v, want > 0", elapsed)
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("second Stop() = %v, want 0", again)
	}

	out := buf.String()
	for _, want := range []string{`message="read_sources completed"`, "files=2", "duration_ms="} {
		if !strings.Contains(out, want) {
			t.Errorf("timer output missing %q: %q", want, out)
		}
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)

	logger.StartTimer("save_run").StopWithError(errors.New("locked"))

	out := buf.String()
	if !strings.Contains(out, "[ERR]") || !strings.Contains(out, `error="locked"`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	logger, buf := newBufferLogger(FormatLogfmt, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("n", n).Info("line")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("got %d lines, want 20", len(lines))
	}
}

func TestLogger_Caller(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: buf, EnableCaller: true})

	logger.Info("with caller")
	if !strings.Contains(buf.String(), "at=logger_test.go:") {
		t.Errorf("caller missing: %q", buf.String())
	}
}

func TestConsoleFormatter_Colors(t *testing.T) {
	logger, buf := newBufferLogger(FormatConsole, LevelInfo)
	logger.Warn("careful")

	out := buf.String()
	if !strings.HasPrefix(out, LevelWarn.Color()) || !strings.HasSuffix(out, colorReset+"\n") {
		t.Errorf("console line not colored: %q", out)
	}
}
