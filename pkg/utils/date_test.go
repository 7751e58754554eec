package utils

import (
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-02-15T10:00:00Z", "2024-02-15T10:00:00Z"},
		{"2024-02-15T10:00:00.000Z", "2024-02-15T10:00:00Z"},
		{"2024-02-15T11:00:00+01:00", "2024-02-15T10:00:00Z"},
		{"2024-02-15", "2024-02-15T00:00:00Z"},
		// unknown format passes through untouched instead of dropping the value
		{"15.02.2024", "15.02.2024"},
	}

	for _, c := range cases {
		if got := FormatTimestamp(c.in); got != c.want {
			t.Errorf("FormatTimestamp(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatTimestampPtr(t *testing.T) {
	if got := FormatTimestampPtr(nil); got != "" {
		t.Fatalf("nil timestamp should render empty, got %q", got)
	}

	ts := "2024-01-02T09:30:00+01:00"
	if got := FormatTimestampPtr(&ts); got != "2024-01-02T08:30:00Z" {
		t.Fatalf("expected UTC RFC3339, got %q", got)
	}
}
