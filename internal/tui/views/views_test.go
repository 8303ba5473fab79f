package views

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	today := time.Now().Format("2006-01-02") + " 09:30:00"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"today shows clock", today, "09:30"},
		{"older shows date", "2024-03-05 09:30:00", "03/05"},
		{"iso layout", "2024-03-05T09:30:00", "03/05"},
		{"unparseable passes through", "yesterday", "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTime(tt.in); got != tt.want {
				t.Errorf("formatTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello coach", "hello coach"},
		{"skin tone stripped", "ok \U0001F44D\U0001F3FB", "ok \U0001F44D"},
		{"zwj stripped", "a‍b", "ab"},
		{"variation selector stripped", "❤️", "❤"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeForTerminal(tt.in); got != tt.want {
				t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
