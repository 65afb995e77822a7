// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/catalog-engine/pkg/types"
)

// loadRecords reads a paper record batch written by a previous stage.
func loadRecords(path string) ([]types.PaperRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records from %s: %w", path, err)
	}
	var records []types.PaperRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing records from %s: %w", path, err)
	}
	return records, nil
}

// saveRecords writes a paper record batch for the next stage.
func saveRecords(path string, records []types.PaperRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing records to %s: %w", path, err)
	}
	return nil
}
