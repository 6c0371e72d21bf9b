package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "leadform",
		Short: "Lead generation site with inquiry and newsletter forms",
		Long: `leadform serves the landing page, the inquiry sheet, the newsletter
subscription and the cookie consent banner. The same inquiry form can be
filled in from a terminal with "leadform inquire".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "leadform.yaml", "Path to the YAML configuration file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		inquireCmd(&configPath),
		renderCmd(&configPath),
		lintCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
