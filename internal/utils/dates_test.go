package utils

import (
	"testing"
	"time"
)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2022-01-01",
			want:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date and time",
			input: "2022-01-01T09:30",
			want:  time.Date(2022, 1, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2022-01-01T09:30:00Z",
			want:  time.Date(2022, 1, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgeInYears(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth string
		want  int
	}{
		{"birthday passed this year", "2022-01-01", 4},
		{"birthday later this year", "2022-12-31", 3},
		{"birthday today", "2022-06-15", 4},
		{"newborn", "2026-06-01", 0},
		{"unparsable", "not-a-date", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeInYears(tt.birth, now); got != tt.want {
				t.Errorf("AgeInYears(%q) = %d, want %d", tt.birth, got, tt.want)
			}
		})
	}
}
