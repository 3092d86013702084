package cmd

import (
	"github.com/abhisek/orientation/internal/config"
	"github.com/abhisek/orientation/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orientation",
	Short: "Student orientation quiz",
	Long:  "Orientation walks new students through school policies with a graded, bilingual quiz and issues a completion certificate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ORIENTATION_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("lang", "", "Display language: en or es (overrides the saved preference)")
	rootCmd.PersistentFlags().String("questions", "", "Path to a question bank JSON file (embedded bank when empty)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig reads configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{ConfigFile: file})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db_path (ORIENTATION_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveQuestionsPath returns --questions, then questions_path from config.
func resolveQuestionsPath(cmd *cobra.Command, cfg *config.Config) string {
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		return p
	}
	if cfg != nil {
		return cfg.QuestionsPath
	}
	return ""
}
