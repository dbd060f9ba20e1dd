// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

func sampleResponse() types.SearchResponse {
	return types.SearchResponse{
		ResultsRange: "1-2",
		TotalResults: 412,
		Results: []types.ScoredRecord{
			{Score: 0.91, Record: types.ArticleRecord{
				Title: "Immunotherapy in Advanced Melanoma", Authors: "Alice Smith, Bob Lee",
				Year: 2023, PMID: "12345", DOI: "10.1000/jco.2023.001",
				Journal: "Journal of Clinical Oncology", Abstract: "Background text.",
			}},
			{Score: 0.58, Record: types.ArticleRecord{
				Title: "A Very Long Title That Definitely Exceeds The Sixty Character Column Width",
				Authors: "Group", Year: 2021, PMID: "67890",
			}},
		},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleResponse(), &buf)
	out := buf.String()

	if !strings.Contains(out, "Rank") || !strings.Contains(out, "PMID") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "Alice Smith et al.") {
		t.Errorf("expected first-author et al. form: %q", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long title not truncated: %q", out)
	}
	if !strings.Contains(out, "Showing 1-2 of 412 results") {
		t.Errorf("missing summary line: %q", out)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.SearchResponse{ResultsRange: "0-0"}, &buf)
	if !strings.Contains(buf.String(), "No results found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(sampleResponse(), &buf); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var resp types.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if resp.TotalResults != 412 || len(resp.Results) != 2 {
		t.Errorf("decoded = %+v", resp)
	}
	if resp.Results[0].Record.PMID != "12345" {
		t.Errorf("PMID = %q", resp.Results[0].Record.PMID)
	}
}
