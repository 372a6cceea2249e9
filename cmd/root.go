package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "funnel",
	Short: "Adaptive practice scheduler for MediPrep",
	Long: "Funnel decides which practice questions a learner sees next: it tracks\n" +
		"per-concept mastery, balances weak concepts against untested ones, sources\n" +
		"questions from tiered pools, and never shows the same question twice.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MEDIPREP_DB env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for the remote seen-store (overrides MEDIPREP_REDIS_ADDR)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(variantCmd)
	rootCmd.AddCommand(seenCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then MEDIPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
