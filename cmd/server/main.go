// Package main is the entry point for the draftforge server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "draftforge",
	Short: "Draftforge character creation server",
	Long:  `Draftforge serves a step-by-step character assembly API backed by authored rule content.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
