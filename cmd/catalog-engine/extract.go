// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/extractor"
	"github.com/pdiddy/catalog-engine/internal/scan"
	"github.com/pdiddy/catalog-engine/internal/vision"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

const defaultAITimeout = 60 * time.Second

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Extract bibliographic metadata from PDF files",
	Long: `Extract pulls bibliographic metadata (title, authors, year, journal,
volume, issue, pages) from academic PDFs. Embedded document properties are
read first, then regex mining over the first pages of text, then an optional
vision model pass on the first page image. Results are cached by file
fingerprint so repeat runs are cheap.

Provide PDF paths as arguments, or --dir to scan a directory recursively.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("dir", "", "scan a directory for PDFs instead of listing files")
	extractCmd.Flags().Bool("fast", false, "fast mode: fewer pages mined, no vision calls")
	extractCmd.Flags().Int("workers", 0, "concurrent extraction workers (default 4)")
	extractCmd.Flags().Bool("vision", false, "enable model-assisted extraction of the first page")
	extractCmd.Flags().String("model", "gpt-4o-mini", "AI model identifier for vision extraction")
	extractCmd.Flags().String("api-key", "", "AI API key (default: .secrets/openai-api-key)")
	extractCmd.Flags().String("base-url", "", "AI API base URL (default: https://api.openai.com/v1)")
	extractCmd.Flags().String("cache-dir", ".cache/pdf_metadata", "extraction cache directory")
	extractCmd.Flags().Bool("no-cache", false, "disable the extraction cache")
	extractCmd.Flags().String("source-url", "", "URL the PDFs were collected from, for journal detection")
	extractCmd.Flags().String("output", "records.json", "output file for extracted records")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	paths := args
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		found, err := scan.FindPDFs(dir)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("provide one or more PDF files, or --dir to scan a directory")
	}

	fast, _ := cmd.Flags().GetBool("fast")
	output, _ := cmd.Flags().GetString("output")

	cfg := extractionConfigFromFlags(cmd)
	service := extractor.New(cfg, visionBackendFromConfig(cfg))

	records, summary := service.ExtractBatch(context.Background(), paths, fast, os.Stdout)

	if sourceURL, _ := cmd.Flags().GetString("source-url"); sourceURL != "" {
		scan.ApplySource(records, scan.DetectJournal(sourceURL))
	}

	if err := saveRecords(output, records); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d extracted, %d failed; records written to %s\n",
		summary.Extracted, summary.Failed, output)

	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed extraction", summary.Failed)
	}
	return nil
}

// extractionConfigFromFlags builds the extraction stage config shared by
// the extract and split commands.
func extractionConfigFromFlags(cmd *cobra.Command) types.ExtractionConfig {
	workers, _ := cmd.Flags().GetInt("workers")
	useVision, _ := cmd.Flags().GetBool("vision")
	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	baseURL, _ := cmd.Flags().GetString("base-url")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	return types.ExtractionConfig{
		CacheDir:   cacheDir,
		UseCache:   !noCache,
		UseVision:  useVision,
		MaxWorkers: workers,
		Vision: types.AIConfig{
			Model:   model,
			APIKey:  secretDefault("openai-api-key", apiKey),
			BaseURL: baseURL,
			Timeout: defaultAITimeout,
		},
	}
}

// visionBackendFromConfig returns a vision backend when the config enables
// one, or nil so the heuristic path runs alone.
func visionBackendFromConfig(cfg types.ExtractionConfig) vision.Backend {
	if !cfg.UseVision || cfg.Vision.APIKey == "" {
		return nil
	}
	return &vision.OpenAIBackend{
		APIKey:  cfg.Vision.APIKey,
		Model:   cfg.Vision.Model,
		BaseURL: cfg.Vision.BaseURL,
		Client:  &http.Client{Timeout: cfg.Vision.Timeout},
	}
}
