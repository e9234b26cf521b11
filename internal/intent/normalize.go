package intent

import (
	"strings"
	"unicode"
)

// Mode selects which canonical form Normalize produces.
type Mode int

const (
	// ModeScript canonicalizes Thai-script text.
	ModeScript Mode = iota
	// ModeRomanized canonicalizes RTGS romanized text.
	ModeRomanized
)

// Trailing politeness particles, longest-specific-first so that compound
// particles are removed before their shorter suffixes.
var thaiPoliteParticles = []string{"นะครับ", "นะคะ", "ครับ", "ค่ะ", "คะ", "นะ"}

var romanPoliteParticles = []string{"na khrap", "na kha", "khrap", "kha", "na"}

// Normalize canonicalizes text for comparison. It is pure and idempotent.
// Empty input normalizes to the empty string, which callers must treat as
// "no signal", never as a match.
func Normalize(text string, mode Mode) string {
	if mode == ModeRomanized {
		return normalizeRomanized(text)
	}
	return normalizeScript(text)
}

func normalizeScript(text string) string {
	next := collapseSpaces(text)
	next = stripParticles(next, thaiPoliteParticles)
	next = stripCombiningMarks(next)
	next = stripZeroWidth(next)
	return strings.TrimSpace(next)
}

func normalizeRomanized(text string) string {
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return stripParticles(collapseSpaces(b.String()), romanPoliteParticles)
}

// collapseSpaces trims the string and collapses internal whitespace runs to
// a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripParticles removes each trailing politeness particle at most once, in
// the given order.
func stripParticles(s string, particles []string) string {
	next := s
	for _, particle := range particles {
		if strings.HasSuffix(next, particle) {
			next = collapseSpaces(strings.TrimSuffix(next, particle))
		}
	}
	return next
}

// stripCombiningMarks removes combining tone and vowel marks so that the
// same syllable spoken with or without tone diacritics compares equal.
func stripCombiningMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
}

// stripZeroWidth removes zero-width spaces and joiners plus the BOM, which
// Thai keyboards and recognizers insert between words.
func stripZeroWidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, s)
}
