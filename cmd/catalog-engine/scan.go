// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "List PDF files in a directory tree",
	Long: `Scan walks a directory recursively and lists the PDF files it finds.
With --source-url, the URL is matched against known journal sources so the
journal name can be attached during extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("source-url", "", "URL the PDFs were collected from, for journal detection")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	paths, err := scan.FindPDFs(args[0])
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(os.Stdout, p)
	}
	fmt.Fprintf(os.Stdout, "%d PDF(s) found in %s\n", len(paths), args[0])

	if sourceURL, _ := cmd.Flags().GetString("source-url"); sourceURL != "" {
		if src := scan.DetectJournal(sourceURL); src != nil {
			fmt.Fprintf(os.Stdout, "journal source: %s (%s confidence)\n", src.Journal, src.Confidence)
		} else {
			fmt.Fprintln(os.Stdout, "journal source: not recognized")
		}
	}
	return nil
}
