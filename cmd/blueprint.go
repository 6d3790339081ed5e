package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/certprep/internal/blueprint"
	"github.com/abhisek/certprep/internal/ui/theme"
	"github.com/spf13/cobra"
)

var blueprintCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Inspect and validate exam blueprints",
}

var blueprintShowCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Show blueprint areas and weights",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		sections := env.table.Sections()
		if len(args) == 1 {
			sections = args
		}
		for i, s := range sections {
			bp, err := env.table.Lookup(s)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Println()
			}
			printBlueprint(bp)
		}
		return nil
	},
}

var blueprintValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a blueprint table (default: the configured one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var table *blueprint.Table
		if len(args) == 1 {
			t, err := blueprint.LoadFile(args[0])
			if err != nil {
				return err
			}
			table = t
		} else {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			table = env.table
		}

		bad := 0
		for _, s := range table.Sections() {
			_, err := table.Lookup(s)
			var mbe *blueprint.MalformedBlueprintError
			if errors.As(err, &mbe) {
				bad++
				fmt.Printf("%s  %s\n", theme.Fail.Render("BLOCKED"), s)
				for _, p := range mbe.Problems {
					fmt.Printf("  - %s\n", p)
				}
				continue
			}
			fmt.Printf("%s  %s\n", theme.Pass.Render("OK     "), s)
		}

		if bad > 0 {
			return fmt.Errorf("%d malformed section(s)", bad)
		}
		return nil
	},
}

func printBlueprint(bp blueprint.Blueprint) {
	title := bp.Section
	if bp.Label != "" {
		title = bp.Label
	}
	fmt.Println(theme.Title.Render(title))
	fmt.Printf("  %-8s  %-45s  %6s\n", "Code", "Area", "Weight")
	for _, a := range bp.Areas {
		fmt.Printf("  %-8s  %-45s  %5.1f%%\n", a.Code, a.DisplayName(), a.Weight*100)
	}
}

func init() {
	blueprintCmd.AddCommand(blueprintShowCmd)
	blueprintCmd.AddCommand(blueprintValidateCmd)
}
