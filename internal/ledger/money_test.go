package ledger

import (
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain integer", input: "12", want: 1200},
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "single decimal digit", input: "5.5", want: 550},
		{name: "rounds half up", input: "1.005", want: 101},
		{name: "rounds down below half", input: "1.004", want: 100},
		{name: "zero allowed", input: "0", want: 0},
		{name: "zero with decimals", input: "0.00", want: 0},
		{name: "leading dot", input: ".99", want: 99},
		{name: "surrounding spaces", input: " 7.25 ", want: 725},
		{name: "empty string", input: "", wantErr: true},
		{name: "negative rejected", input: "-1.00", wantErr: true},
		{name: "explicit plus rejected", input: "+1.00", wantErr: true},
		{name: "letters rejected", input: "12.3a", wantErr: true},
		{name: "two separators rejected", input: "1.2.3", wantErr: true},
		{name: "overflow rejected", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %q: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{name: "plain", input: 1234, want: "12.34"},
		{name: "zero", input: 0, want: "0.00"},
		{name: "single cent", input: 5, want: "0.05"},
		{name: "negative", input: -250, want: "-2.50"},
		{name: "large", input: 123456789, want: "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCents(tt.input); got != tt.want {
				t.Errorf("FormatCents(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []int64{0, 1, 99, 100, 1234, 999999999}
	for _, cents := range inputs {
		got, err := ParseDecimalToCents(FormatCents(cents))
		if err != nil {
			t.Errorf("Round trip failed for %d: %v", cents, err)
			continue
		}
		if got != cents {
			t.Errorf("Round trip for %d returned %d", cents, got)
		}
	}
}
