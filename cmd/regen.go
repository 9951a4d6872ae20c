package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Rebuild the deck from current settings",
	Long: `Rebuild the deck from current settings. All scheduling progress
and session statistics are discarded; use this after changing the number
range or operation mode, or to start over.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fmt.Println("❌ Startup error:", err)
			return
		}
		defer a.close()

		cards, err := a.regenerate()
		if err != nil {
			fmt.Println("❌ Error regenerating deck:", err)
			return
		}

		fmt.Printf("🔄 Deck rebuilt: %d facts (%s, %d–%d)\n",
			len(cards), a.settings.OperationMode, a.settings.MinNumber, a.settings.MaxNumber)
	},
}

func init() {
	rootCmd.AddCommand(regenCmd)
}
