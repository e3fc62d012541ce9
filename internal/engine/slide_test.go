package engine

import (
	"slices"
	"testing"
)

func TestSlideRowMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		gained   int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			gained:   4,
		},
		{
			name:     "three equal merges first pair only",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			gained:   4,
		},
		{
			name:     "one merge per tile",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			gained:   8,
		},
		{
			name:     "merged tile does not chain",
			input:    []int{4, 4, 8, 0},
			expected: []int{8, 8, 0, 0},
			gained:   8,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			gained:   4,
		},
		{
			name:     "merge across gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			gained:   4,
		},
		{
			name:     "already packed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
		},
		{
			name:     "five wide",
			input:    []int{2, 2, 4, 4, 4},
			expected: []int{4, 8, 4, 0, 0},
			gained:   12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := slices.Clone(tt.input)
			result, gained := slideRow(input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("slideRow(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if gained != tt.gained {
				t.Errorf("slideRow(%v) gained = %d, want %d", tt.input, gained, tt.gained)
			}
			if !slices.Equal(input, tt.input) {
				t.Errorf("slideRow mutated its input: %v", input)
			}
		})
	}
}
