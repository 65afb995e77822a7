// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify extracted papers by academic subject",
	Long: `Classify assigns a primary subject, secondary subjects, and a confidence
level to each extracted paper record. With --ai, an AI model classifies from
title, content preview, and authors; without it (or when the model call
fails), bilingual keyword matching is used.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("input", "records.json", "input file of extracted records")
	classifyCmd.Flags().String("output", "", "output file for classified records (default: overwrite input)")
	classifyCmd.Flags().Bool("ai", false, "use an AI model instead of keyword matching")
	classifyCmd.Flags().String("model", "gpt-4o-mini", "AI model identifier for classification")
	classifyCmd.Flags().String("api-key", "", "AI API key (default: .secrets/openai-api-key)")
	classifyCmd.Flags().String("base-url", "", "AI API base URL (default: https://api.openai.com/v1)")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = input
	}

	records, err := loadRecords(input)
	if err != nil {
		return err
	}

	var backend classify.Backend
	if useAI, _ := cmd.Flags().GetBool("ai"); useAI {
		model, _ := cmd.Flags().GetString("model")
		apiKey, _ := cmd.Flags().GetString("api-key")
		baseURL, _ := cmd.Flags().GetString("base-url")
		backend = &classify.OpenAIBackend{
			APIKey:  secretDefault("openai-api-key", apiKey),
			Model:   model,
			BaseURL: baseURL,
			Client:  &http.Client{Timeout: defaultAITimeout},
		}
	}

	classifier := classify.New(backend)
	records = classifier.ClassifyBatch(context.Background(), records, os.Stdout)

	return saveRecords(output, records)
}
