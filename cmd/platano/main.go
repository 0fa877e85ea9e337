package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "platano",
	Short: "platano — sneaker catalog, inquiry and order service",
	Long: "platano serves a customer search/order surface and an operator surface\n" +
		"over one relational catalog, and ships a scraper that feeds the catalog.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scrapeCmd)
}
