package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brzaa/math-practice-kids/internal/deck"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck counts and session speed statistics",
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

		counts := deck.Stats(cards, time.Now())

		fmt.Println("📊 Deck")
		fmt.Println("-------")
		fmt.Printf("Total:      %d\n", counts.Total)
		fmt.Printf("Due now:    %d\n", counts.Due)
		fmt.Printf("New:        %d\n", counts.New)
		fmt.Printf("Learning:   %d\n", counts.Learning+counts.Relearning)
		fmt.Printf("Review:     %d\n", counts.Review)

		stats, err := a.store.LoadSession()
		if err != nil {
			fmt.Println("\n⚡ Session: unreadable, will reset on next drill")
			return
		}

		fmt.Println("\n⚡ Session speed")
		fmt.Println("---------------")
		fmt.Printf("Samples:    %d\n", stats.Count())
		if stats.WarmedUp {
			fmt.Println("Grading:    speed-aware (warmed up)")
			fmt.Printf("p25/p50:    %.0f ms / %.0f ms\n", stats.P25, stats.P50)
			fmt.Printf("p75/p90:    %.0f ms / %.0f ms\n", stats.P75, stats.P90)
		} else {
			fmt.Printf("Grading:    flat (warming up, %d/%d samples)\n",
				stats.Count(), a.settings.WarmupTarget)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
