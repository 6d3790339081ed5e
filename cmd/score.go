package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/certprep/internal/schemas"
	"github.com/abhisek/certprep/internal/scoring"
	"github.com/abhisek/certprep/internal/ui/components"
	"github.com/abhisek/certprep/internal/ui/theme"
	"github.com/spf13/cobra"
)

// attemptFile is the JSON layout accepted by the score command.
type attemptFile struct {
	ExamID      string            `json:"exam_id"`
	Answers     map[string]string `json:"answers"`
	ElapsedMS   map[string]int64  `json:"elapsed_ms"`
	SubmittedAt string            `json:"submitted_at"`
}

var scoreCmd = &cobra.Command{
	Use:   "score <attempt.json>",
	Short: "Score a submitted attempt against its stored exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attempt, err := readAttempt(args[0])
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		svc, closeFn, err := env.openService(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := svc.Submit(ctx, attempt)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printResult(res)
		return nil
	},
}

func readAttempt(path string) (scoring.Attempt, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scoring.Attempt{}, fmt.Errorf("read attempt: %w", err)
	}
	if err := schemas.Validate(schemas.Attempt, raw); err != nil {
		return scoring.Attempt{}, err
	}

	var f attemptFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return scoring.Attempt{}, fmt.Errorf("decode attempt: %w", err)
	}

	a := scoring.Attempt{
		ExamID:  f.ExamID,
		Answers: f.Answers,
		Elapsed: make(map[string]time.Duration, len(f.ElapsedMS)),
	}
	for id, ms := range f.ElapsedMS {
		a.Elapsed[id] = time.Duration(ms) * time.Millisecond
	}
	if f.SubmittedAt != "" {
		if a.SubmittedAt, err = time.Parse(time.RFC3339, f.SubmittedAt); err != nil {
			return scoring.Attempt{}, fmt.Errorf("submitted_at: %w", err)
		}
	}
	return a, nil
}

func printResult(r *scoring.Result) {
	fmt.Printf("%s  %d/%d  %s  (passing %s)\n",
		theme.Title.Render("Exam "+r.ExamID),
		r.Correct, r.Total,
		scoring.FormatPercent(r.Percentage),
		scoring.FormatPercent(r.Threshold))
	fmt.Println(theme.Verdict(r.Passed))
	if r.Unanswered > 0 {
		fmt.Println(theme.Hint.Render(fmt.Sprintf("%d unanswered", r.Unanswered)))
	}
	if r.TimeSpent > 0 {
		fmt.Println(theme.Hint.Render("time spent " + r.TimeSpent.Round(time.Second).String()))
	}

	fmt.Println()
	fmt.Printf("%-40s  %7s  %7s\n", "Area", "Correct", "Score")
	fmt.Println(strings.Repeat("─", 80))
	for _, a := range r.Areas {
		label := a.Code + " " + a.Label
		if a.Label == a.Code {
			label = a.Code
		}
		fmt.Printf("%s  %3d/%-3d  %7s  %s\n",
			fitCell(label, 40), a.Correct, a.Total, scoring.FormatPercent(a.Percentage),
			components.NewScoreBar(a.Percentage, 20).View())
	}

	if len(r.Missed) > 0 {
		fmt.Println()
		fmt.Println(theme.Heading.Render("Review"))
		fmt.Println("  " + strings.Join(r.Missed, ", "))
	}
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
}
