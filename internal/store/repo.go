package store

import (
	"context"

	"github.com/abhisek/orientation/internal/i18n"
)

// KeyLanguage is the preference key for the display language.
const KeyLanguage = "language"

// PreferenceRepo persists user preferences across runs.
type PreferenceRepo interface {
	// Get returns the stored value for key. The bool is false when unset.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Language returns the saved display language. The bool is false when
	// nothing valid is stored.
	Language(ctx context.Context) (i18n.Language, bool, error)

	// SetLanguage saves the display language.
	SetLanguage(ctx context.Context, lang i18n.Language) error
}
