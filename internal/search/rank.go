// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// meshBoost is added to the similarity score of any record whose MeSH
// terms contain the resolved descriptor.
const meshBoost = 0.3

// rankSemantically orders records by embedding similarity to the query.
// The query and every document go through a single batched encoding
// call. When useMesh is set, MeSH terms join each record's scoring text
// and records tagged with the resolved descriptor get a fixed boost.
func (p *Pipeline) rankSemantically(ctx context.Context, query string, records []types.ArticleRecord, useMesh bool, meshTerm string) ([]types.ScoredRecord, error) {
	enc, err := p.Encoder()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankerUnavailable, err)
	}

	texts := make([]string, 0, len(records)+1)
	texts = append(texts, query)
	for _, r := range records {
		texts = append(texts, scoringDocument(r, useMesh))
	}

	vectors, err := enc.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankerUnavailable, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrRankerUnavailable, len(vectors), len(texts))
	}

	queryVec := vectors[0]
	wantTerm := strings.ToLower(strings.TrimSpace(meshTerm))

	scored := make([]types.ScoredRecord, len(records))
	for i, r := range records {
		score := cosineSimilarity(queryVec, vectors[i+1])
		if useMesh && wantTerm != "" && hasMeshTerm(r.MeshTerms, wantTerm) {
			score += meshBoost
		}
		scored[i] = types.ScoredRecord{Score: clamp01(score), Record: r}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// scoringDocument builds the text that stands in for a record during
// scoring: title and abstract, plus the MeSH terms when they count.
func scoringDocument(r types.ArticleRecord, useMesh bool) string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, r.Title)
	}
	if r.Abstract != "" {
		parts = append(parts, r.Abstract)
	}
	if useMesh && len(r.MeshTerms) > 0 {
		parts = append(parts, strings.Join(r.MeshTerms, " "))
	}
	return strings.Join(parts, ". ")
}

// hasMeshTerm reports whether terms contains want, compared
// case-insensitively after trimming.
func hasMeshTerm(terms []string, want string) bool {
	for _, t := range terms {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

// cosineSimilarity returns the cosine of the angle between a and b, or
// zero when either vector is empty or degenerate.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
