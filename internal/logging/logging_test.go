package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitVerbose(t *testing.T) {
	// Smoke test: should not panic.
	Init(true)
}

func TestInitQuiet(t *testing.T) {
	Init(false)
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		verbose   bool
		wantDebug bool
	}{
		{true, true},
		{false, false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := Setup(&buf, tt.verbose, FormatText)

		logger.Debug("debug line")
		logger.Warn("warn line")

		out := buf.String()
		if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
			t.Errorf("verbose=%v: debug logged = %v, want %v", tt.verbose, got, tt.wantDebug)
		}
		if !strings.Contains(out, "warn line") {
			t.Errorf("verbose=%v: warning not logged", tt.verbose)
		}
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, false, FormatJSON)

	slog.Warn("rows dropped", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "rows dropped" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
