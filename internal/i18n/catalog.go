package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var defaultCatalog = mustLoadEmbedded()

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog maps a language and key to a display string.
type Catalog struct {
	tables map[Language]map[string]string
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog
}

// LoadEmbedded parses the embedded locale files.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS parses every locales/*.yaml file in fsys.
// The English table is required.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	c := &Catalog{tables: make(map[Language]map[string]string, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		var lf localeFile
		if err := yaml.Unmarshal(data, &lf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}

		want := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if lf.Locale != want {
			return nil, fmt.Errorf("%s: locale %q must match file name %q", p, lf.Locale, want)
		}
		lang := Language(lf.Locale)
		if !lang.Valid() {
			return nil, fmt.Errorf("%s: unsupported locale %q", p, lf.Locale)
		}
		if len(lf.Messages) == 0 {
			return nil, fmt.Errorf("%s: no messages", p)
		}
		c.tables[lang] = lf.Messages
	}

	if _, ok := c.tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("base locale %q is not defined", DefaultLanguage)
	}
	return c, nil
}

// NewCatalog builds a catalog from in-memory tables.
func NewCatalog(tables map[Language]map[string]string) *Catalog {
	c := &Catalog{tables: make(map[Language]map[string]string, len(tables))}
	for lang, msgs := range tables {
		cp := make(map[string]string, len(msgs))
		for k, v := range msgs {
			cp[k] = v
		}
		c.tables[lang] = cp
	}
	return c
}

// Resolve looks key up in lang, then in English, and finally returns key
// itself. It never fails.
func (c *Catalog) Resolve(key string, lang Language) string {
	if c == nil {
		return key
	}
	if v, ok := c.tables[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := c.tables[DefaultLanguage][key]; ok && v != "" {
		return v
	}
	return key
}

// Format resolves key and replaces positional {0}, {1}, ... placeholders.
func (c *Catalog) Format(key string, lang Language, args ...any) string {
	s := c.Resolve(key, lang)
	for i, a := range args {
		s = strings.ReplaceAll(s, "{"+strconv.Itoa(i)+"}", fmt.Sprint(a))
	}
	return s
}

// Has reports whether key exists in lang's own table (no fallback).
func (c *Catalog) Has(key string, lang Language) bool {
	if c == nil {
		return false
	}
	_, ok := c.tables[lang][key]
	return ok
}

// Keys returns the sorted keys of lang's own table.
func (c *Catalog) Keys(lang Language) []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.tables[lang]))
	for k := range c.tables[lang] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mustLoadEmbedded() *Catalog {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}
