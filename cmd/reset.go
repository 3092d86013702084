package cmd

import (
	"fmt"

	"github.com/abhisek/orientation/internal/config"
	"github.com/abhisek/orientation/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openPrefsStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.PreferenceRepo().Delete(cmd.Context(), store.KeyLanguage); err != nil {
			return fmt.Errorf("reset preferences: %w", err)
		}
		fmt.Println("Saved preferences cleared")
		return nil
	},
}

// openPrefsStore loads config and opens the preference database.
func openPrefsStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}
