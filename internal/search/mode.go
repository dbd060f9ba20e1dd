// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// FilterByMode applies the mode-specific candidate filter. Only exact
// title mode removes records; semantic and broad pass everything
// through, and so does any unrecognized mode.
func FilterByMode(query string, records []types.ArticleRecord, mode types.Mode) []types.ArticleRecord {
	if mode != types.ModeExactTitle {
		return records
	}

	want := strings.ToLower(strings.TrimSpace(query))
	var kept []types.ArticleRecord
	for _, r := range records {
		if strings.ToLower(strings.TrimSpace(r.Title)) == want {
			kept = append(kept, r)
		}
	}
	return kept
}
