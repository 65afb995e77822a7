// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/catalog"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog database with full-text search",
	Long: `Search queries the SQLite catalog database using FTS5 full-text search
over titles, authors, journals, and content previews. Both Latin and Chinese
query terms are supported.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("db-dir", "output", "directory containing the catalog database")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("all", false, "list every cataloged record instead of searching")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	dbDir, _ := cmd.Flags().GetString("db-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	listAll, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := catalog.NewStore(dbDir)
	if err != nil {
		return err
	}
	defer store.Close()

	var results []types.PaperRecord
	switch {
	case listAll:
		results, err = store.List(context.Background())
	case len(args) > 0:
		results, err = store.Search(context.Background(), strings.Join(args, " "), limit)
	default:
		return fmt.Errorf("provide a search query, or --all to list every record")
	}
	if err != nil {
		return err
	}

	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []types.PaperRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-25s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Journal")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-50s  %-25s  %-6s  %s\n",
			i+1, clip(r.Title, 50), clip(r.Authors, 25), r.Year, r.Journal)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
