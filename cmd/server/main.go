// Package main is the entry point for the initiative API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "initiative-api",
	Short: "D&D initiative tracker API",
	Long:  `Initiative API serves battle turn tracking, encounter prep and stat-block import over a JSON HTTP interface.`,
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
