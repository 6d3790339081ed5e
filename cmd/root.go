package cmd

import (
	"github.com/abhisek/certprep/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "certprep",
	Short:         "Blueprint-weighted practice exams for certification candidates",
	Long:          "certprep assembles timed practice exams from a tagged question bank following the official exam blueprint, and scores submitted attempts with per-area breakdowns.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./certprep.yaml or ~/.config/certprep/certprep.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CERTPREP_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to question bank JSON (overrides config)")
	rootCmd.PersistentFlags().String("blueprints", "", "Path to blueprint table JSON (default: built-in table)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(blueprintCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured DSN, then CERTPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, nil
	}
	return store.DefaultDBPath()
}
