package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported display language tag.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// DefaultLanguage is the fallback for every lookup.
const DefaultLanguage = English

var supportedTags = []language.Tag{
	language.English,
	language.Spanish,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the supported languages in display order.
func Supported() []Language {
	return []Language{English, Spanish}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == English || l == Spanish
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == Spanish {
		return English
	}
	return Spanish
}

// Tag returns the x/text tag for l.
func (l Language) Tag() language.Tag {
	if l == Spanish {
		return language.Spanish
	}
	return language.English
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage maps an arbitrary language tag or POSIX locale string
// (e.g. "es-MX", "es_US.UTF-8") onto a supported Language.
// The bool is false when nothing matched and DefaultLanguage was returned.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || strings.EqualFold(s, "C") || strings.EqualFold(s, "POSIX") {
		return DefaultLanguage, false
	}

	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage, false
	}

	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage, false
	}
	if idx == 1 {
		return Spanish, true
	}
	return English, true
}
