package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/certprep/internal/question"
	"github.com/abhisek/certprep/internal/ui/theme"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question counts by section, area and difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		bank, err := env.loadBank()
		if err != nil {
			return err
		}
		size, err := examSizeFlag(cmd, env.cfg.Defaults.QuestionsPerExam)
		if err != nil {
			return err
		}

		for i, section := range bank.Sections() {
			if i > 0 {
				fmt.Println()
			}
			total := len(bank.Section(section))
			fmt.Printf("%s  %d questions, %d non-overlapping exam(s) of %d\n",
				theme.Title.Render(section), total, total/size, size)

			header := fmt.Sprintf("  %-10s  %6s", "Area", "Total")
			for _, d := range question.AllDifficulties() {
				header += fmt.Sprintf("  %6s", d)
			}
			fmt.Println(header)
			fmt.Println("  " + strings.Repeat("─", len(header)-2))

			known := make(map[string]bool)
			for _, st := range bank.Stats(section) {
				known[st.Area] = true
				line := fmt.Sprintf("  %-10s  %6d", st.Area, st.Total)
				for _, d := range question.AllDifficulties() {
					line += fmt.Sprintf("  %6d", st.ByDifficulty[d])
				}
				fmt.Println(line)
			}

			bp, err := env.table.Lookup(section)
			if err != nil {
				fmt.Println(theme.Warn.Render("  ! " + err.Error()))
				continue
			}
			for _, a := range bp.Areas {
				if !known[a.Code] {
					fmt.Println(theme.Warn.Render(fmt.Sprintf("  ! blueprint area %s has no questions", a.Code)))
				}
			}
		}
		return nil
	},
}

func init() {
	bankStatsCmd.Flags().Int("size", 100, "Exam size used for the capacity estimate")
	bankCmd.AddCommand(bankStatsCmd)
}
