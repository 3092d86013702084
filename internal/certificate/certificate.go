package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/abhisek/orientation/internal/grading"
	"github.com/abhisek/orientation/internal/i18n"
)

// ErrNotEligible is returned when the results do not earn a certificate.
var ErrNotEligible = errors.New("results do not meet the certificate grade")

// Renderer produces a certificate artifact and returns where it was written.
type Renderer interface {
	Render(ctx context.Context, req Request) (string, error)
}

// Request carries everything printed on a certificate.
type Request struct {
	StudentName  string
	Program      string
	ProgramLabel string
	Results      grading.Results
	Language     i18n.Language
	CompletedAt  time.Time
}

// Line is one centered line of certificate text. Scale multiplies the
// base glyph size.
type Line struct {
	Text  string
	Scale int
	Gap   int
}

// FileName returns orientation-completion-<name-slug>-<YYYY-MM-DD>.<ext>.
func FileName(studentName string, date time.Time, ext string) string {
	return fmt.Sprintf("orientation-completion-%s-%s.%s", slug(studentName), date.Format("2006-01-02"), ext)
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case unicode.IsSpace(r) || r == '-':
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "student"
	}
	return s
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders the completion date the way each language writes it.
func FormatDate(t time.Time, lang i18n.Language) string {
	if lang == i18n.Spanish {
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}

// Lines lays out the certificate text for req.
func Lines(c *i18n.Catalog, req Request) []Line {
	lang := req.Language
	r := req.Results
	program := req.ProgramLabel
	if program == "" {
		program = req.Program
	}

	return []Line{
		{Text: c.Resolve("certificate_title", lang), Scale: 4, Gap: 24},
		{Text: c.Resolve("student_orientation", lang), Scale: 3, Gap: 48},
		{Text: c.Resolve("certificate_certifies", lang), Scale: 2, Gap: 24},
		{Text: req.StudentName, Scale: 4, Gap: 24},
		{Text: c.Format("certificate_completed_program", lang, program), Scale: 2, Gap: 12},
		{Text: c.Resolve("certificate_at_institute", lang) + " " +
			c.Resolve("genesis_vocational_institute", lang) + " " +
			c.Format("certificate_on_date", lang, FormatDate(req.CompletedAt, lang)), Scale: 2, Gap: 48},
		{Text: c.Resolve("certificate_performance", lang), Scale: 2, Gap: 16},
		{Text: c.Format("certificate_score_line", lang, r.Score, r.Total, r.Percentage), Scale: 2, Gap: 8},
		{Text: c.Format("certificate_grade_line", lang, r.Grade), Scale: 2, Gap: 8},
		{Text: c.Format("certificate_time_line", lang, r.TimeFormatted), Scale: 2, Gap: 64},
		{Text: c.Resolve("genesis_vocational_institute", lang), Scale: 2, Gap: 8},
		{Text: c.Resolve("school_address", lang), Scale: 1, Gap: 6},
		{Text: strings.Join([]string{
			c.Resolve("school_phone", lang),
			c.Resolve("school_email", lang),
			c.Resolve("school_website", lang),
		}, " | "), Scale: 1, Gap: 0},
	}
}
