// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// QueryFile is the on-disk representation of a search request and its
// results. A search can be saved to a file and reloaded later without
// re-querying PubMed.
type QueryFile struct {
	Request types.SearchRequest  `yaml:"request"`
	Results []types.ScoredRecord `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Returned     int       `yaml:"returned"`
	TotalResults int       `yaml:"total_results"`
	ResultsRange string    `yaml:"results_range"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves the request and its response to a YAML file.
func WriteQueryFile(path string, req types.SearchRequest, resp types.SearchResponse) error {
	qf := QueryFile{
		Request: req,
		Results: resp.Results,
		Summary: QuerySummary{
			Returned:     len(resp.Results),
			TotalResults: resp.TotalResults,
			ResultsRange: resp.ResultsRange,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
