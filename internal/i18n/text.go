package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a display value that is either a plain string shared by every
// language or a per-language map with English as the fallback.
type Text struct {
	plain     string
	values    map[Language]string
	localized bool
}

// Plain returns a language-independent Text.
func Plain(s string) Text {
	return Text{plain: s}
}

// Localized returns a Text backed by a per-language map.
func Localized(values map[Language]string) Text {
	cp := make(map[Language]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Text{values: cp, localized: true}
}

// IsLocalized reports whether t carries per-language values.
func (t Text) IsLocalized() bool {
	return t.localized
}

// Resolve returns the display string for lang. Plain text is returned as-is;
// localized text falls back to English, then to the empty string.
func (t Text) Resolve(lang Language) string {
	if !t.localized {
		return t.plain
	}
	if v, ok := t.values[lang]; ok && v != "" {
		return v
	}
	return t.values[DefaultLanguage]
}

// ResolveText is Resolve as a free function.
func ResolveText(value Text, lang Language) string {
	return value.Resolve(lang)
}

// UnmarshalJSON accepts either a JSON string or an object keyed by language tag.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Plain(s)
		return nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("localized text must be a string or a language map: %w", err)
	}
	values := make(map[Language]string, len(raw))
	for k, v := range raw {
		values[Language(k)] = v
	}
	*t = Text{values: values, localized: true}
	return nil
}

// MarshalJSON writes the same shape UnmarshalJSON reads.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.localized {
		return json.Marshal(t.plain)
	}
	raw := make(map[string]string, len(t.values))
	for k, v := range t.values {
		raw[string(k)] = v
	}
	return json.Marshal(raw)
}
