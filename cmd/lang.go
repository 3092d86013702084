package cmd

import (
	"fmt"

	"github.com/abhisek/orientation/internal/i18n"
	"github.com/spf13/cobra"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the saved display language",
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the display language and where it comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openPrefsStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		lang, source, err := resolveLanguage(cmd.Context(), cmd, cfg, st.PreferenceRepo())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", lang, source)
		return nil
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set <en|es>",
	Short: "Save the display language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, ok := i18n.ParseLanguage(args[0])
		if !ok {
			return fmt.Errorf("unsupported language %q: use en or es", args[0])
		}

		st, _, err := openPrefsStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.PreferenceRepo().SetLanguage(cmd.Context(), lang); err != nil {
			return fmt.Errorf("save language: %w", err)
		}
		fmt.Printf("Display language set to %s\n", lang)
		return nil
	},
}

func init() {
	langCmd.AddCommand(langGetCmd)
	langCmd.AddCommand(langSetCmd)
}
