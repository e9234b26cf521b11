package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/nara/thaiquest/internal/intent"
)

func TestNormalize_ScriptStripsParticlesAndToneMarks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trailing khrap particle", "สวัสดีครับ", "สวสด"},
		{"trailing kha particle", "สวัสดีค่ะ", "สวสด"},
		{"compound na khrap stripped before khrap", "ขอบคุณนะครับ", "ขอบคณ"},
		{"internal whitespace collapsed", "ขอบ   คุณ", "ขอบ คณ"},
		{"zero width space removed", "สวัส​ดี", "สวสด"},
		{"empty input", "", ""},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, intent.Normalize(tt.input, intent.ModeScript))
		})
	}
}

func TestNormalize_RomanizedLowercasesAndStripsParticles(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Sawatdi", "sawatdi"},
		{"punctuation becomes space", "sawat-di, khun!", "sawat-di khun"},
		{"trailing kha particle", "sawatdi kha", "sawatdi"},
		{"compound na kha particle", "khop khun na kha", "khop khun"},
		{"thai script becomes empty", "สวัสดี", ""},
		{"digits survive", "song 2 khuat", "song 2 khuat"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, intent.Normalize(tt.input, intent.ModeRomanized))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"สวัสดีครับ",
		"ขอบคุณนะคะ",
		"Sawatdi KHA",
		"khop   khun na khrap",
		"",
		"aroi mak!",
	}

	for _, input := range inputs {
		for _, mode := range []intent.Mode{intent.ModeScript, intent.ModeRomanized} {
			once := intent.Normalize(input, mode)
			twice := intent.Normalize(once, mode)
			assert.Equal(t, once, twice, "normalize must be idempotent for %q", input)
		}
	}
}
