package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the question bank",
	Long: `Print every question in the bank in the order the quiz asks them.

The bank is validated exactly as it is at startup, so this also works as a
check for an external --questions file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showAnswers, _ := cmd.Flags().GetBool("answers")

		lang := i18n.DefaultLanguage
		if v, _ := cmd.Flags().GetString("lang"); v != "" {
			parsed, ok := i18n.ParseLanguage(v)
			if !ok {
				return fmt.Errorf("unsupported language %q: use en or es", v)
			}
			lang = parsed
		}

		path, _ := cmd.Flags().GetString("questions")
		if path == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path = cfg.QuestionsPath
		}

		bank, err := quiz.LoadBank(path)
		if err != nil {
			return err
		}

		// Header.
		fmt.Printf("%4s  %-70s  %s\n", "ID", "Prompt", "Choices")
		fmt.Println(strings.Repeat("─", 90))

		localized := 0
		for _, q := range bank.All() {
			if q.Prompt.IsLocalized() {
				localized++
			}
			prompt := q.Prompt.Resolve(lang)
			if len([]rune(prompt)) > 70 {
				prompt = string([]rune(prompt)[:67]) + "..."
			}
			fmt.Printf("%4d  %-70s  %d\n", q.ID, prompt, len(q.Choices))

			if showAnswers {
				for i, c := range q.Choices {
					marker := " "
					if i == q.CorrectIndex {
						marker = "*"
					}
					fmt.Printf("      %s %c) %s\n", marker, 'A'+rune(i), c.Resolve(lang))
				}
			}
		}

		fmt.Printf("\n%d questions (%d localized)\n", bank.Len(), localized)
		return nil
	},
}

func init() {
	questionsCmd.Flags().Bool("answers", false, "Show choices and mark the correct one")
}
