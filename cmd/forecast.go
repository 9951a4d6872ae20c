package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/brzaa/math-practice-kids/internal/deck"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show how many facts come due over the next days",
	Run: func(cmd *cobra.Command, args []string) {
		if forecastDays <= 0 {
			fmt.Println("❌ --days must be at least 1")
			return
		}

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
		counts := deck.Forecast(cards, forecastDays, now)

		fmt.Printf("📅 Due forecast (%d days)\n\n", forecastDays)
		writeForecastTable(os.Stdout, counts, now)
	},
}

// writeForecastTable renders one row per forecast day, with the bar
// folded into the Due column.
func writeForecastTable(out io.Writer, counts []int, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Day\tDate\tDue")
	fmt.Fprintln(w, "---\t----\t---")
	for day, n := range counts {
		label := now.AddDate(0, 0, day).Format("Mon Jan 2")
		if day == 0 {
			label = "Today"
		}
		due := fmt.Sprintf("%d", n)
		if n > 0 {
			due += " " + strings.Repeat("█", n)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", day, label, due)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.Flags().IntVarP(&forecastDays, "days", "d", 7, "Days to forecast")
}
