// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/extractor"
)

var splitCmd = &cobra.Command{
	Use:   "split <pdf>",
	Short: "Detect and split multi-paper PDFs into per-paper records",
	Long: `Split scans a PDF for paper boundaries (title pages with abstracts,
author lines, and similar front matter) and produces one record per detected
paper with its page range. Scanned journal issues that bundle several papers
into one file get a record per paper; single-paper files fall back to normal
extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("cache-dir", ".cache/pdf_metadata", "extraction cache directory")
	splitCmd.Flags().Bool("no-cache", false, "disable the extraction cache")
	splitCmd.Flags().String("output", "records.json", "output file for per-paper records")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	cfg := extractionConfigFromFlags(cmd)
	service := extractor.New(cfg, nil)

	records := service.DetectAndSplit(context.Background(), args[0])

	for _, rec := range records {
		if rec.IsMultiPaper {
			fmt.Fprintf(os.Stdout, "paper %d/%d  pages %-8s  %s\n",
				rec.PaperNumber, rec.TotalPapers, rec.PageRange, rec.Title)
		} else {
			fmt.Fprintf(os.Stdout, "single paper  %s\n", rec.Title)
		}
	}
	fmt.Fprintf(os.Stdout, "%d paper(s) detected in %s\n", len(records), args[0])

	return saveRecords(output, records)
}
