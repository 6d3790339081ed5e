package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/certprep/internal/examgen"
	"github.com/abhisek/certprep/internal/practice"
	"github.com/abhisek/certprep/internal/ui/theme"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate blueprint-weighted practice exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		section, _ := cmd.Flags().GetString("section")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		avoid, _ := cmd.Flags().GetBool("avoid-history")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !cmd.Flags().Changed("count") {
			count = env.cfg.Defaults.ExamCount
		}
		size, err := examSizeFlag(cmd, env.cfg.Defaults.QuestionsPerExam)
		if err != nil {
			return err
		}
		targets, err := examgen.ParseDifficultyTargets(difficulty)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		svc, closeFn, err := env.openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		batch, err := svc.Generate(ctx, examgen.Config{
			Section:           section,
			ExamCount:         count,
			QuestionsPerExam:  size,
			DifficultyTargets: targets,
			Exclude:           exclude,
			Seed:              seed,
		}, practice.GenerateOptions{AvoidHistory: avoid})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(batch)
		}
		printBatch(batch)
		return nil
	},
}

func printBatch(b *examgen.Batch) {
	fmt.Println(theme.Title.Render(fmt.Sprintf("Section %s: %d exam(s)", b.Section, len(b.Exams))))
	fmt.Println(theme.Hint.Render(fmt.Sprintf("seed %d (pass --seed %d to reproduce)", b.Seed, b.Seed)))

	for _, e := range b.Exams {
		fmt.Println()
		fmt.Printf("%s  %s  %d questions\n", theme.Heading.Render(fmt.Sprintf("Exam %d", e.Index+1)), e.ID, e.Len())
		fmt.Printf("  %-10s  %6s  %6s\n", "Area", "Target", "Actual")
		fmt.Println("  " + strings.Repeat("─", 26))
		for _, ac := range e.Areas {
			line := fmt.Sprintf("  %-10s  %6d  %6d", ac.Area, ac.Target, ac.Actual)
			if ac.Actual != ac.Target {
				line = theme.Warn.Render(line)
			}
			fmt.Println(line)
		}
		for _, s := range e.Substitutions {
			fmt.Println(theme.Warn.Render(fmt.Sprintf("  %d question(s) of %s replaced from %s", s.Count, s.From, s.To)))
		}
	}

	if len(b.Warnings) > 0 {
		fmt.Println()
		for _, w := range b.Warnings {
			fmt.Println(theme.Warn.Render("! " + w.String()))
		}
	}
}

func init() {
	generateCmd.Flags().String("section", "part1", "Exam section to generate for")
	generateCmd.Flags().Int("count", 1, "Number of exams in the batch")
	generateCmd.Flags().Int("size", 100, "Questions per exam")
	generateCmd.Flags().Uint64("seed", 0, "Random seed (0 = random)")
	generateCmd.Flags().String("difficulty", "", "Difficulty mix, e.g. easy=0.3,medium=0.5,hard=0.2")
	generateCmd.Flags().StringSlice("exclude", nil, "Question IDs to exclude")
	generateCmd.Flags().Bool("avoid-history", false, "Skip questions used in previously generated exams when possible")
	generateCmd.Flags().Bool("json", false, "Print the batch as JSON")
}
