package cmd

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/orientation/internal/config"
	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/store"
)

func langCommand(t *testing.T, flag string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("lang", "", "")
	if flag != "" {
		require.NoError(t, c.Flags().Set("lang", flag))
	}
	return c
}

func openTestPrefs(t *testing.T) store.PreferenceRepo {
	t.Helper()
	st, err := store.Open(t.TempDir() + "/prefs.db")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.PreferenceRepo()
}

func TestResolveLanguageOrder(t *testing.T) {
	ctx := context.Background()
	t.Setenv("LANG", "es_US.UTF-8")

	prefs := openTestPrefs(t)
	cfg := &config.Config{Language: "en"}

	// Config beats $LANG.
	lang, src, err := resolveLanguage(ctx, langCommand(t, ""), cfg, prefs)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
	assert.Equal(t, sourceConfig, src)

	// Saved preference beats config.
	require.NoError(t, prefs.SetLanguage(ctx, i18n.Spanish))
	lang, src, err = resolveLanguage(ctx, langCommand(t, ""), cfg, prefs)
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, lang)
	assert.Equal(t, sourcePreference, src)

	// Flag beats everything.
	lang, src, err = resolveLanguage(ctx, langCommand(t, "en"), cfg, prefs)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
	assert.Equal(t, sourceFlag, src)
}

func TestResolveLanguageFromEnv(t *testing.T) {
	t.Setenv("LANG", "es_MX.UTF-8")

	lang, src, err := resolveLanguage(context.Background(), langCommand(t, ""), &config.Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, i18n.Spanish, lang)
	assert.Equal(t, sourceEnv, src)
}

func TestResolveLanguageDefault(t *testing.T) {
	t.Setenv("LANG", "C")

	lang, src, err := resolveLanguage(context.Background(), langCommand(t, ""), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)
	assert.Equal(t, sourceDefault, src)
}

func TestResolveLanguageRejectsUnknownFlag(t *testing.T) {
	_, _, err := resolveLanguage(context.Background(), langCommand(t, "fr"), nil, nil)
	assert.ErrorContains(t, err, "unsupported language")
}
