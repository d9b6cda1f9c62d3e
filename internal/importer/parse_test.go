package importer

import "testing"

func TestParseDurationTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"45m", 2700},
		{"1h 5m", 3900},
		{"1h 5m 10s", 3910},
		{"10s", 10},
		{"garbage", 0},
		{"1h junk 5m", 3900},
		{"-5m", 0},
		{"  2h  ", 7200},
	}
	for _, tt := range tests {
		if got := parseDurationTokens(tt.in); got != tt.want {
			t.Errorf("parseDurationTokens(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseLenientSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"90", 90},
		{"90.4", 90},
		{"1m 30s", 90},
		{"nope", 0},
	}
	for _, tt := range tests {
		if got := parseLenientSeconds(tt.in); got != tt.want {
			t.Errorf("parseLenientSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseRepsPtr(t *testing.T) {
	if got := parseRepsPtr("8.0"); got == nil || *got != 8 {
		t.Errorf("parseRepsPtr(8.0) = %v, want 8", got)
	}
	if got := parseRepsPtr("2.6"); got == nil || *got != 3 {
		t.Errorf("parseRepsPtr(2.6) = %v, want 3", got)
	}
	if got := parseRepsPtr(""); got != nil {
		t.Errorf("parseRepsPtr(empty) = %v, want nil", got)
	}
	if got := parseRepsPtr("x"); got != nil {
		t.Errorf("parseRepsPtr(x) = %v, want nil", got)
	}
}
