package locale

import (
	"github.com/abhisek/orientation/internal/i18n"
)

// Locale is the display language shared by every screen. Screens hold a
// pointer so a language switch shows up on the next render.
type Locale struct {
	catalog *i18n.Catalog
	lang    i18n.Language
}

// New returns a Locale using catalog, starting in lang.
func New(catalog *i18n.Catalog, lang i18n.Language) *Locale {
	if !lang.Valid() {
		lang = i18n.DefaultLanguage
	}
	return &Locale{catalog: catalog, lang: lang}
}

// Lang returns the current language.
func (l *Locale) Lang() i18n.Language {
	return l.lang
}

// Set switches the current language. Unsupported values are ignored.
func (l *Locale) Set(lang i18n.Language) {
	if lang.Valid() {
		l.lang = lang
	}
}

// Toggle switches to the other language and returns it.
func (l *Locale) Toggle() i18n.Language {
	l.lang = l.lang.Toggle()
	return l.lang
}

// Catalog returns the backing catalog.
func (l *Locale) Catalog() *i18n.Catalog {
	return l.catalog
}

// T resolves a catalog key.
func (l *Locale) T(key string) string {
	return l.catalog.Resolve(key, l.lang)
}

// F resolves a catalog key and fills its positional placeholders.
func (l *Locale) F(key string, args ...any) string {
	return l.catalog.Format(key, l.lang, args...)
}

// Text resolves localized content.
func (l *Locale) Text(t i18n.Text) string {
	return t.Resolve(l.lang)
}
