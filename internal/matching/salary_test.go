package matching

import "testing"

func TestExtractSalaryNum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect float64
	}{
		{name: "empty", input: "", expect: 0},
		{name: "no digits", input: "N/A", expect: 0},
		{name: "rupee with indian separators", input: "₹8,00,000", expect: 800000},
		{name: "range takes first", input: "₹8,00,000 – 12,00,000", expect: 800000},
		{name: "decimal", input: "3.5 LPA", expect: 3.5},
		{name: "text before number", input: "Up to 15 LPA", expect: 15},
		{name: "dots only", input: "...", expect: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractSalaryNum(tt.input); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
