package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mathkids",
	Short: "Spaced repetition practice for arithmetic facts",
	Long: `Mathkids drills addition and subtraction facts using spaced
repetition (FSRS). It generates a deck of facts from your settings, picks
the next fact to practice, and grades answers by correctness and speed.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
