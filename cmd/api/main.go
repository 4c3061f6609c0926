// Command api serves the job application agent over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobagent",
	Short: "Job application agent API",
	Long:  "Runs simulated job search and application pipelines for candidate profiles entered over a JSON API.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
