package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/orientation/internal/grading"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a score without taking the quiz",
	Long: `Compute the percentage, letter grade and certificate eligibility for a
score. This is a stateless tool: no database and no session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetInt("score")
		total, _ := cmd.Flags().GetInt("total")
		elapsed, _ := cmd.Flags().GetDuration("time")

		if total < 0 || score < 0 {
			return fmt.Errorf("score and total must not be negative")
		}
		if score > total {
			return fmt.Errorf("score %d exceeds total %d", score, total)
		}

		end := time.Now()
		r := grading.Calculate(score, total, end.Add(-elapsed), end)

		eligible := "no"
		if r.Passing {
			eligible = "yes"
		}
		fmt.Printf("Score:       %d/%d\n", r.Score, r.Total)
		fmt.Printf("Percentage:  %d%%\n", r.Percentage)
		fmt.Printf("Grade:       %s\n", r.Grade)
		fmt.Printf("Time:        %s\n", r.TimeFormatted)
		fmt.Printf("Certificate: %s (requires %d%% or higher)\n", eligible, grading.PassingPercentage)
		return nil
	},
}

func init() {
	gradeCmd.Flags().Int("score", 0, "Number of correct answers (required)")
	gradeCmd.Flags().Int("total", 25, "Number of questions")
	gradeCmd.Flags().Duration("time", 0, "Time spent, e.g. 4m30s")
	_ = gradeCmd.MarkFlagRequired("score")
}
