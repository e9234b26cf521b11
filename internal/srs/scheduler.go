// Package srs implements the box-based spaced-repetition scheduler: five
// retention boxes, a fixed base-interval table, and a four-valued rating
// scale for recall grading.
package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/nara/thaiquest/internal/models"
)

// Rating grades one recall attempt. These four values are the sole external
// vocabulary for grading; host UIs map their affordances onto them.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating validates a raw rating string.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return Rating(s), nil
	}
	return "", fmt.Errorf("srs: invalid rating %q", s)
}

// MinBox and MaxBox bound the retention tiers.
const (
	MinBox = 1
	MaxBox = 5
)

// Base review intervals in days, indexed by box (1-based).
var baseIntervalDays = [MaxBox]int{1, 3, 7, 14, 30}

// ProblemWordThreshold is the incorrect count at which an item is flagged
// as a leech.
const ProblemWordThreshold = 3

// NextBox computes the retention box after a rating. "again" always resets
// to box 1; "hard" demotes one box only once the rolling incorrect streak
// has reached 2; "good" and "easy" promote by one and two boxes, capped at
// MaxBox.
func NextBox(currentBox int, rating Rating, incorrectStreak int) int {
	box := clampBox(currentBox)
	switch rating {
	case RatingAgain:
		return MinBox
	case RatingHard:
		if incorrectStreak >= 2 {
			return maxInt(MinBox, box-1)
		}
		return box
	case RatingEasy:
		return minInt(MaxBox, box+2)
	default:
		return minInt(MaxBox, box+1)
	}
}

// IntervalDays returns the review interval for a box. "hard" halves the
// base (floor one day), "easy" scales it by 1.5; "good" and "again" use the
// base unscaled, so an "again" rating schedules off its new box 1, i.e.
// tomorrow.
func IntervalDays(box int, rating Rating) int {
	base := baseIntervalDays[clampBox(box)-1]
	switch rating {
	case RatingHard:
		return maxInt(1, int(math.Round(float64(base)*0.5)))
	case RatingEasy:
		return int(math.Round(float64(base) * 1.5))
	default:
		return base
	}
}

// UpdateProgress applies one rating to a progress record and returns the
// updated record. Pure; persistence is the caller's concern. The record
// must be freshly read: concurrent raters on different devices race with
// last-write-wins semantics, a documented consistency gap of the
// non-transactional progress store.
func UpdateProgress(rec models.ReviewProgress, rating Rating, now time.Time) models.ReviewProgress {
	incorrect := rating == RatingAgain

	streak := 0
	if incorrect {
		streak = rec.IncorrectStreak + 1
	}

	rec.Box = NextBox(rec.Box, rating, streak)
	rec.IncorrectStreak = streak
	if incorrect {
		rec.TimesIncorrect++
	} else {
		rec.TimesCorrect++
	}
	// Once flagged, never cleared by this subsystem.
	if rec.TimesIncorrect >= ProblemWordThreshold {
		rec.ProblemWord = true
	}
	rec.LastReviewed = now
	rec.NextReview = now.Add(time.Duration(IntervalDays(rec.Box, rating)) * 24 * time.Hour)
	return rec
}

func clampBox(box int) int {
	if box < MinBox {
		return MinBox
	}
	if box > MaxBox {
		return MaxBox
	}
	return box
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
