package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name     string
		left     string
		right    string
		expected int
	}{
		{"identical", "sawatdi", "sawatdi", 0},
		{"single deletion", "sawatdi", "sawadi", 1},
		{"single substitution", "kha", "khr", 1},
		{"classic kitten sitting", "kitten", "sitting", 3},
		{"empty left", "", "abc", 3},
		{"empty right", "abc", "", 3},
		{"both empty", "", "", 0},
		{"thai runes count as single edits", "สวสด", "สวสย", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshteinDistance(tt.left, tt.right))
		})
	}
}

func TestLevenshteinDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"sawatdi", "sawadee"},
		{"khop khun", "khap khun"},
		{"", "mai"},
		{"สวัสดี", "สวาดี"},
	}

	for _, pair := range pairs {
		assert.Equal(t,
			levenshteinDistance(pair[0], pair[1]),
			levenshteinDistance(pair[1], pair[0]),
			"distance(%q, %q) must be symmetric", pair[0], pair[1])
	}
}
