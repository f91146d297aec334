// Package main provides the jobtracker command: a tool server plus CSV and
// statistics commands over the same tracker database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "jobtracker",
	Short:         "Track companies, job applications and interview notes",
	Long:          "jobtracker stores companies, their job applications and interview notes, imports and exports them as CSV, and serves them to assistants as MCP tools.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
