package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInit_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelDebug, Format: "text", Output: &buf})
	defer Reset()

	LogPhase("analyze")

	out := buf.String()
	if !strings.Contains(out, "Starting compilation phase") || !strings.Contains(out, "phase=analyze") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelDebug, Format: "json", Output: &buf})
	defer Reset()

	LogOptimization("constant-folding", 3)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["pass"] != "constant-folding" {
		t.Errorf("pass = %v, want constant-folding", record["pass"])
	}
	if record["changes"] != float64(3) {
		t.Errorf("changes = %v, want 3", record["changes"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelWarn, Output: &buf})
	defer Reset()

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level leaked: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		shown bool
	}{
		{"hidden at warn", LevelWarn, false},
		{"hidden at error", LevelError, false},
		{"shown at debug", LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Init(Config{Level: tt.level, Output: &buf})
			defer Reset()

			LogError("analyze", 2, "Identifier y not declared")

			if got := strings.Contains(buf.String(), "Compilation error"); got != tt.shown {
				t.Errorf("LogError() shown = %v, want %v (%q)", got, tt.shown, buf.String())
			}
		})
	}
}

func TestUninitializedIsSilent(t *testing.T) {
	Reset()
	// Must not panic.
	Debug("nothing")
	LogError("parse", 1, "boom")
	LogPhaseComplete("js", "bytes", 10)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}
