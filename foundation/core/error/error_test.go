// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: Tests for scene I/O codes and chain lookups

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			message:  "wrapper message",
			wantMsg:  "wrapper message: original error",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("permission denied").WithCode(CodeFileRead),
			message:  "failed to read scene.rad",
			wantMsg:  "failed to read scene.rad: permission denied",
			wantCode: CodeFileRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}
			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
			if wrapped.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", wrapped.Code(), tt.wantCode)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("errors.Is should find the wrapped cause")
			}
		})
	}
}

func TestWrap_ChainTruncation(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < MaxErrorChainDepth+2; i++ {
		err = Wrap(err, fmt.Sprintf("level %d", i))
	}

	mdwErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if mdwErr.Details()["truncated"] != true {
		t.Error("expected truncated chain detail")
	}
	if !strings.Contains(mdwErr.Error(), "root") {
		t.Errorf("truncated error should mention root cause, got %q", mdwErr.Error())
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeStoreError, SeverityHigh},
		{CodeFileRead, SeverityHigh},
		{CodeInvalidFormat, SeverityLow},
		{CodeNotFound, SeverityLow},
		{CodeInternal, SeverityCritical},
		{CodeWatchError, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeInvalidFormat)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: %v", explicit.Severity())
	}
}

func TestHasCode(t *testing.T) {
	inner := New("disk full").WithCode(CodeStoreError)
	outer := Wrap(inner, "save run").WithCode(CodeInternal)
	plain := fmt.Errorf("context: %w", outer)

	if !HasCode(plain, CodeStoreError) {
		t.Error("HasCode should find inner code through fmt wrapping")
	}
	if !HasCode(plain, CodeInternal) {
		t.Error("HasCode should find outer code")
	}
	if HasCode(plain, CodeFileRead) {
		t.Error("HasCode reported an absent code")
	}
	if HasCode(errors.New("plain"), CodeUnknown) {
		t.Error("HasCode on a plain error should be false")
	}
	if GetCode(plain) != CodeInternal {
		t.Errorf("GetCode() = %v, want %v", GetCode(plain), CodeInternal)
	}
}

func TestCode_Category(t *testing.T) {
	tests := map[Code]string{
		CodeFileRead:      "io",
		CodeRenderError:   "io",
		CodeStoreError:    "store",
		CodeInvalidConfig: "configuration",
		CodeNotFound:      "input",
		CodeUnknown:       "generic",
	}
	for code, want := range tests {
		if got := code.Category(); got != want {
			t.Errorf("%s.Category() = %q, want %q", code, got, want)
		}
	}
	if Code("BOGUS").IsValid() {
		t.Error("unknown code reported valid")
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("no such file"), "read failed").
		WithCode(CodeFileRead).
		WithDetail("path", "room.rad").
		WithOperation("source.Read")

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("MarshalJSON() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if jsonErr := json.Unmarshal(data, &decoded); jsonErr != nil {
		t.Fatalf("invalid JSON: %v", jsonErr)
	}
	if decoded["code"] != "FILE_READ" {
		t.Errorf("code = %v, want FILE_READ", decoded["code"])
	}
	if decoded["operation"] != "source.Read" {
		t.Errorf("operation = %v", decoded["operation"])
	}
	if decoded["cause"] != "no such file" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestString(t *testing.T) {
	s := New("bad indent").WithCode(CodeInvalidConfig).WithDetail("indent", 12).WithDetail("a", 1).String()
	for _, want := range []string{"Error: bad indent", "Code: INVALID_CONFIG", "Details: {a=1, indent=12}"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
