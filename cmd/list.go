package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/spf13/cobra"

	"github.com/brzaa/math-practice-kids/internal/scheduler"
)

var listDueOnly bool

var stateNames = map[fsrs.State]string{
	fsrs.New:        "New",
	fsrs.Learning:   "Learning",
	fsrs.Review:     "Review",
	fsrs.Relearning: "Relearning",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the facts in the deck",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Println("❌ Startup error:", err)
			return
		}
		defer a.close()

		cards, _, err := a.ensureDeck()
		if err != nil {
			fmt.Println("❌ Deck error:", err)
			return
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Fact\tWeight\tState\tDue\tReps")
		fmt.Fprintln(w, "----\t------\t-----\t---\t----")

		shown := 0
		for _, c := range cards {
			st := scheduler.Classify(c.Sched)
			due := !scheduler.Due(c.Sched).After(now)
			if listDueOnly && (st == fsrs.New || !due) {
				continue
			}

			dueStr := "-"
			if st != fsrs.New {
				dueStr = c.Sched.Due.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n",
				c.Fact, c.Weight, stateNames[st], dueStr, c.Sched.Reps)
			shown++
		}
		w.Flush()

		if shown == 0 && listDueOnly {
			fmt.Println("✅ Nothing due right now.")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listDueOnly, "due", "u", false, "Only show cards due now")
}
