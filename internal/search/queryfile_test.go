// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")

	req := types.DefaultSearchRequest()
	req.Query = "glioblastoma treatment"
	req.Mode = types.ModeSemantic
	req.MaxResults = 10

	if err := WriteQueryFile(path, req, sampleResponse()); err != nil {
		t.Fatalf("WriteQueryFile() error = %v", err)
	}

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile() error = %v", err)
	}
	if qf.Request.Query != "glioblastoma treatment" {
		t.Errorf("Query = %q", qf.Request.Query)
	}
	if qf.Request.Mode != types.ModeSemantic || qf.Request.MaxResults != 10 {
		t.Errorf("Request = %+v", qf.Request)
	}
	if len(qf.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(qf.Results))
	}
	if qf.Results[0].Record.PMID != "12345" {
		t.Errorf("PMID = %q", qf.Results[0].Record.PMID)
	}
	if qf.Summary.Returned != 2 || qf.Summary.TotalResults != 412 {
		t.Errorf("Summary = %+v", qf.Summary)
	}
	if qf.Summary.ResultsRange != "1-2" {
		t.Errorf("ResultsRange = %q", qf.Summary.ResultsRange)
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Errorf("Timestamp not set")
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadQueryFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQueryFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
