package grading

import (
	"fmt"
	"time"
)

// Grade is a letter grade.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Passing reports whether the grade earns a certificate. Only A and B pass.
func (g Grade) Passing() bool {
	return g == GradeA || g == GradeB
}

func (g Grade) String() string {
	return string(g)
}

// PassingPercentage is the lowest percentage that still passes.
const PassingPercentage = 80

// Results is the summary of a completed quiz.
type Results struct {
	Score         int
	Total         int
	Correct       int
	Incorrect     int
	Percentage    int
	Grade         Grade
	TimeSpent     time.Duration
	TimeFormatted string
	Passing       bool
}

// Calculate derives results from a score and the quiz start and end times.
func Calculate(score, total int, start, end time.Time) Results {
	pct := Percentage(score, total)
	grade := GradeFor(pct)
	spent := end.Sub(start)
	if spent < 0 {
		spent = 0
	}

	incorrect := total - score
	if incorrect < 0 {
		incorrect = 0
	}

	return Results{
		Score:         score,
		Total:         total,
		Correct:       score,
		Incorrect:     incorrect,
		Percentage:    pct,
		Grade:         grade,
		TimeSpent:     spent,
		TimeFormatted: FormatDuration(spent),
		Passing:       grade.Passing(),
	}
}

// Percentage returns score/total as a whole percentage, rounding halves up.
// A total of zero yields 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	if score < 0 {
		score = 0
	}
	return (score*200 + total) / (2 * total)
}

// GradeFor maps a percentage onto a letter grade.
func GradeFor(pct int) Grade {
	switch {
	case pct >= 90:
		return GradeA
	case pct >= 80:
		return GradeB
	case pct >= 70:
		return GradeC
	case pct >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// FormatDuration renders d as M:SS, flooring to whole seconds.
// Minutes are not wrapped into hours and negative durations render as 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
