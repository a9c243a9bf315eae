package event

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantErr  bool
		errToken string
	}{
		{
			name:  "German numeric",
			input: "27.11.2025",
			want:  "2025-11-27",
		},
		{
			name:  "German month name with dot",
			input: "27. November 2025",
			want:  "2025-11-27",
		},
		{
			name:  "English month-first with comma",
			input: "Nov 18, 2025",
			want:  "2025-11-18",
		},
		{
			name:  "day month year",
			input: "04 Nov 2025",
			want:  "2025-11-04",
		},
		{
			name:  "ISO",
			input: "2025-11-04",
			want:  "2025-11-04",
		},
		{
			name:  "ISO with time component",
			input: "2025-11-04T12:30",
			want:  "2025-11-04",
		},
		{
			name:  "leading German weekday",
			input: "Donnerstag, 27.11.2025",
			want:  "2025-11-27",
		},
		{
			name:  "leading abbreviated weekday",
			input: "Do. 27.11.2025",
			want:  "2025-11-27",
		},
		{
			name:  "leading English weekday with month-first date",
			input: "Tuesday, November 18, 2025",
			want:  "2025-11-18",
		},
		{
			name:  "trailing Uhr and time",
			input: "27.11.2025, 14:00 Uhr",
			want:  "2025-11-27",
		},
		{
			name:  "full German noise",
			input: "Dienstag, 4. November 2025, 14:15–15:30 Uhr",
			want:  "2025-11-04",
		},
		{
			name:  "non-breaking spaces",
			input: "27.\u00a0November\u00a02025",
			want:  "2025-11-27",
		},
		{
			name:  "German umlaut month",
			input: "3. März 2026",
			want:  "2026-03-03",
		},
		{
			name:  "German umlaut transliteration",
			input: "3. Maerz 2026",
			want:  "2026-03-03",
		},
		{
			name:  "abbreviated month with dot",
			input: "18. Okt. 2025",
			want:  "2025-10-18",
		},
		{
			name:     "unknown month token",
			input:    "18. Foobar 2025",
			wantErr:  true,
			errToken: "foobar",
		},
		{
			name:    "impossible calendar date",
			input:   "30.02.2025",
			wantErr: true,
		},
		{
			name:    "impossible month",
			input:   "18.13.2025",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no date at all",
			input:   "wird noch bekannt gegeben",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %s", tt.input, FormatDate(got))
				}
				if tt.errToken != "" && !strings.Contains(err.Error(), tt.errToken) {
					t.Errorf("ParseDate(%q) error = %q, should name token %q", tt.input, err, tt.errToken)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
		})
	}
}

func TestParseDate_Idempotent(t *testing.T) {
	// Normalizing an already-canonical date returns the same date.
	first, err := ParseDate("27. November 2025")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	second, err := ParseDate(FormatDate(first))
	if err != nil {
		t.Fatalf("ParseDate of canonical form failed: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("canonical round trip changed the date: %s vs %s", FormatDate(first), FormatDate(second))
	}
}

func TestExtractDateCandidate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dienstag, 4. November 2025, 14:15 Uhr", "4. November 2025"},
		{"04 Nov 2025 (tbc)", "04 Nov 2025"},
		{"am 27.11.2025 um 14:00", "27.11.2025"},
		{"2025-11-04T12:30", "2025-11-04"},
		{"no date here", "no date here"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractDateCandidate(tt.input); got != tt.want {
				t.Errorf("ExtractDateCandidate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2025-11-04" {
		t.Errorf("FormatDate = %q, want 2025-11-04", got)
	}
}
