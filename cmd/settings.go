package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brzaa/math-practice-kids/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show current settings",
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := config.Dir()
		if err != nil {
			fmt.Println("❌ Error:", err)
			return
		}
		s, err := config.Load(dir)
		if err != nil {
			fmt.Println("❌ Error loading settings:", err)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Setting\tValue")
		fmt.Fprintln(w, "-------\t-----")
		fmt.Fprintf(w, "operation_mode\t%s\n", s.OperationMode)
		fmt.Fprintf(w, "min_number\t%d\n", s.MinNumber)
		fmt.Fprintf(w, "max_number\t%d\n", s.MaxNumber)
		fmt.Fprintf(w, "non_negative_subtraction\t%t\n", s.NonNegativeSubtraction)
		fmt.Fprintf(w, "difficulty_mode\t%s\n", s.DifficultyMode)
		fmt.Fprintf(w, "warmup_target\t%d\n", s.WarmupTarget)
		fmt.Fprintf(w, "inactivity_hours\t%d\n", s.InactivityHours)
		fmt.Fprintf(w, "session_limit\t%d\n", s.SessionLimit)
		w.Flush()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Update a setting",
	Long: `Update a setting. Changing the operation mode, number range or
non-negative toggle rebuilds the deck on the next drill; changing the
difficulty mode only recomputes weights.

Keys: operation_mode, min_number, max_number, non_negative_subtraction,
difficulty_mode, warmup_target, inactivity_hours, session_limit`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := config.Dir()
		if err != nil {
			fmt.Println("❌ Error:", err)
			return
		}

		s, err := config.Set(dir, args[0], args[1])
		if err != nil {
			fmt.Println("❌", err)
			return
		}

		fmt.Printf("✅ %s = %s\n", args[0], args[1])
		fmt.Printf("   Deck fingerprint: %s\n", s.DeckFingerprint())
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
