package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/orientation/internal/config"
	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/store"
	"github.com/spf13/cobra"
)

// languageSource names where the display language came from.
type languageSource string

const (
	sourceFlag       languageSource = "flag"
	sourcePreference languageSource = "preference"
	sourceConfig     languageSource = "config"
	sourceEnv        languageSource = "environment"
	sourceDefault    languageSource = "default"
)

// resolveLanguage picks the display language: --lang, then the saved
// preference, then config, then $LANG, then English.
func resolveLanguage(ctx context.Context, cmd *cobra.Command, cfg *config.Config, prefs store.PreferenceRepo) (i18n.Language, languageSource, error) {
	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		lang, ok := i18n.ParseLanguage(v)
		if !ok {
			return "", "", fmt.Errorf("unsupported language %q: use en or es", v)
		}
		return lang, sourceFlag, nil
	}

	if prefs != nil {
		lang, ok, err := prefs.Language(ctx)
		if err != nil {
			return "", "", fmt.Errorf("read language preference: %w", err)
		}
		if ok {
			return lang, sourcePreference, nil
		}
	}

	if cfg != nil && cfg.Language != "" {
		if lang, ok := i18n.ParseLanguage(cfg.Language); ok {
			return lang, sourceConfig, nil
		}
	}

	if lang, ok := i18n.ParseLanguage(os.Getenv("LANG")); ok {
		return lang, sourceEnv, nil
	}

	return i18n.DefaultLanguage, sourceDefault, nil
}
