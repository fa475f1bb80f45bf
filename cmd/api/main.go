package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title        Workshop Map Dashboard API
// @version      1.0
// @description  Filters the participatory workshop sheet and serves map, heatmap, bar chart and CSV views of it.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Workshop map dashboard",
	Long: `Serves the workshop map dashboard over HTTP, or exports a filtered
copy of the workshop sheet from the command line.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
