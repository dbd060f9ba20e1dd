// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// FormatTable writes a search response as a human-readable table to w.
func FormatTable(resp types.SearchResponse, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-60s  %-20s  %-4s  %s\n",
		"Rank", "Score", "Title", "Authors", "Year", "PMID")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range resp.Results {
		title := truncate(r.Record.Title, 60)
		year := ""
		if r.Record.Year != 0 {
			year = fmt.Sprintf("%d", r.Record.Year)
		}
		fmt.Fprintf(w, "%-4d  %-6.2f  %-60s  %-20s  %-4s  %s\n",
			i+1, r.Score, title, firstAuthor(r.Record.Authors), year, r.Record.PMID)
	}

	fmt.Fprintf(w, "\nShowing %s of %d results\n", resp.ResultsRange, resp.TotalResults)
}

// FormatJSON writes the full response as indented JSON to w.
func FormatJSON(resp types.SearchResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// firstAuthor shortens a comma-joined author list to its first name,
// marking truncation with et al.
func firstAuthor(authors string) string {
	if authors == "" {
		return ""
	}
	parts := strings.SplitN(authors, ", ", 2)
	if len(parts) == 1 {
		return truncate(parts[0], 20)
	}
	return truncate(parts[0], 14) + " et al."
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
