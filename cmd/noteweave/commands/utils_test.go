// ABOUTME: Tests for CLI utility helpers
// ABOUTME: Truncation, relative times, list splitting, flag validation

package commands

import (
	"reflect"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"tiny max", "hello", 3, "hel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-48 * time.Hour), "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.t); got != tt.want {
				t.Errorf("formatTime() = %q, want %q", got, tt.want)
			}
		})
	}

	// Older than a week falls back to a date
	old := now.Add(-14 * 24 * time.Hour)
	if got := formatTime(old); got != old.Format("2006-01-02") {
		t.Errorf("formatTime(old) = %q, want date format", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "ml", []string{"ml"}},
		{"multiple with spaces", "ml, advanced , basic", []string{"ml", "advanced", "basic"}},
		{"trailing comma", "ml,", []string{"ml"}},
		{"only commas", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "limit"); err != nil {
		t.Errorf("validatePositiveInt(5) error = %v", err)
	}
	if err := validatePositiveInt(0, "limit"); err == nil {
		t.Error("validatePositiveInt(0) should error")
	}
	if err := validatePositiveInt(-1, "limit"); err == nil {
		t.Error("validatePositiveInt(-1) should error")
	}
}

func TestValidateThreshold(t *testing.T) {
	for _, ok := range []float64{0, 0.5, 1} {
		if err := validateThreshold(ok); err != nil {
			t.Errorf("validateThreshold(%v) error = %v", ok, err)
		}
	}
	for _, bad := range []float64{-0.1, 1.1} {
		if err := validateThreshold(bad); err == nil {
			t.Errorf("validateThreshold(%v) should error", bad)
		}
	}
}
