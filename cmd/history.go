package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/certprep/internal/scoring"
	"github.com/abhisek/certprep/internal/ui/theme"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List scored attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		st, err := env.openStore(ctx, cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.ListResults(ctx, section, limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No attempts yet")
			return nil
		}

		fmt.Printf("%-20s  %-8s  %-36s  %9s  %7s  %s\n", "Submitted", "Section", "Exam", "Correct", "Score", "")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range results {
			fmt.Printf("%-20s  %-8s  %-36s  %4d/%-4d  %7s  %s\n",
				r.SubmittedAt.Local().Format("2006-01-02 15:04"),
				r.Section, r.ExamID, r.Correct, r.Total,
				scoring.FormatPercent(r.Percentage), theme.Verdict(r.Passed))
		}

		fmt.Printf("\n%d attempt(s), %s\n", len(results), passRate(results))
		return nil
	},
}

func passRate(results []scoring.Result) string {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return fmt.Sprintf("%d passed", passed)
}

func init() {
	historyCmd.Flags().String("section", "", "Only show this section")
	historyCmd.Flags().Int("limit", 20, "Maximum attempts to show (0 = all)")
}
