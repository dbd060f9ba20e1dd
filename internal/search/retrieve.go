// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
)

const (
	// pageSize caps the ids requested per esearch call.
	pageSize = 100

	// minCandidates floors the candidate pool so ranking always has
	// enough material, regardless of the requested window.
	minCandidates = 200
)

// retrieveCandidates pages PubMed ids for the expanded query until the
// target pool size is reached or the database is exhausted. The total
// match count is captured from the first page and reported unchanged:
// it is the universe size for the query, not the pool size.
func (p *Pipeline) retrieveCandidates(ctx context.Context, query string, retmax int) (ids []string, total int, err error) {
	target := retmax
	if target < minCandidates {
		target = minCandidates
	}

	expanded, _ := p.expandQuery(ctx, query)

	offset := 0
	for len(ids) < target {
		want := pageSize
		if rem := target - len(ids); rem < want {
			want = rem
		}

		page, err := p.EUtils.Search(ctx, "pubmed", expanded, want, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		if total == 0 {
			total = page.Count
		}
		if len(page.IDs) == 0 {
			break
		}

		ids = append(ids, page.IDs...)
		offset += len(page.IDs)

		// A short page means the database has no more results.
		if len(page.IDs) < want {
			break
		}
	}

	if len(ids) > target {
		ids = ids[:target]
	}
	return ids, total, nil
}
