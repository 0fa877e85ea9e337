package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"platano/internal/config"
	"platano/internal/ingest"
	"platano/internal/services"
	"platano/internal/store"
)

var (
	scrapeCSVPath      string
	scrapeCommandsPath string
	scrapeIngest       bool
	scrapeMarkup       float64
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Walk the source site and export/ingest product listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		markup := scrapeMarkup
		if !cmd.Flags().Changed("markup") {
			markup = cfg.MarkupPct
		}

		recs := ingest.New(cfg.ScrapeBaseURL).Run()
		if len(recs) == 0 {
			return fmt.Errorf("no products extracted from %s", cfg.ScrapeBaseURL)
		}
		fmt.Printf("extracted %d products\n", len(recs))

		if scrapeCSVPath != "" {
			f, err := os.Create(scrapeCSVPath)
			if err != nil {
				return err
			}
			err = ingest.WriteCSV(f, recs)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", scrapeCSVPath)
		}

		if scrapeCommandsPath != "" {
			lines := ingest.Commands(recs, markup)
			if err := os.WriteFile(scrapeCommandsPath, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %d operator commands to %s\n", len(lines), scrapeCommandsPath)
		}

		if scrapeIngest {
			st, err := store.Open(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer st.Close()
			added, skipped := ingest.Load(services.NewCatalogService(st, nil), recs, markup)
			fmt.Printf("ingested %d products (%d skipped)\n", added, skipped)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeCSVPath, "csv", "platano_products.csv", "CSV output path (empty to skip)")
	scrapeCmd.Flags().StringVar(&scrapeCommandsPath, "commands", "operator_commands.txt", "add-product command output path (empty to skip)")
	scrapeCmd.Flags().BoolVar(&scrapeIngest, "ingest", false, "load scraped products straight into the catalog store")
	scrapeCmd.Flags().Float64Var(&scrapeMarkup, "markup", 50, "resale markup percentage")
}
