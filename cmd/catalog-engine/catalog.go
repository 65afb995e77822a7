// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Generate catalog files and index records for search",
	Long: `Catalog renders classified paper records into timestamped catalog files
(JSON, CSV, HTML, YAML) and upserts them into a SQLite database with FTS5
full-text indexing. The CSV carries a UTF-8 BOM and bilingual headers so it
opens cleanly in spreadsheet tools.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("input", "records.json", "input file of classified records")
	catalogCmd.Flags().StringSlice("formats", nil, "catalog formats to emit: json, csv, html, yaml (default: all)")
	catalogCmd.Flags().String("output-dir", "output", "directory for generated catalog files")
	catalogCmd.Flags().Bool("no-db", false, "skip indexing records into the SQLite database")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	formats, _ := cmd.Flags().GetStringSlice("formats")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	noDB, _ := cmd.Flags().GetBool("no-db")

	records, err := loadRecords(input)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records in %s", input)
	}

	gen := catalog.NewGenerator(outputDir)
	if _, err := gen.Generate(records, formats, os.Stdout); err != nil {
		return err
	}

	if noDB {
		return nil
	}

	store, err := catalog.NewStore(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(context.Background(), records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "indexed %d record(s)\n", len(records))
	return nil
}
