package utils

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected bool
	}{
		{"zero", 0, false},
		{"negative", -1, false},
		{"one", 1, true},
		{"two", 2, true},
		{"three", 3, false},
		{"sixteen", 16, true},
		{"large non-power", 1023, false},
		{"very large", 1 << 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPowerOfTwo(tt.input); got != tt.expected {
				t.Errorf("IsPowerOfTwo(%d) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}

	if !IsPowerOfTwo(uint64(1) << 32) {
		t.Error("IsPowerOfTwo(2^32 as uint64) should be true")
	}
}

func TestLog2(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{1, 0},
		{2, 1},
		{8, 3},
		{1024, 10},
		{3, -1},
		{0, -1},
		{-4, -1},
	}

	for _, tt := range tests {
		if got := Log2(tt.input); got != tt.expected {
			t.Errorf("Log2(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}

	if got := Log2(uint64(1) << 40); got != 40 {
		t.Errorf("Log2(2^40) = %d, expected 40", got)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
	}

	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.input); got != tt.expected {
			t.Errorf("NextPowerOfTwo(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
