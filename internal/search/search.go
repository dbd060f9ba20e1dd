// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements the PubMed search pipeline: MeSH-assisted
// query expansion, paginated candidate retrieval, citation parsing,
// mode filtering, and semantic ranking.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-search/internal/embed"
	"github.com/pdiddy/pubmed-search/internal/eutils"
	"github.com/pdiddy/pubmed-search/pkg/types"
)

// Pipeline stage failures that abort a request. The HTTP layer maps
// each to a distinct response with errors.Is.
var (
	// ErrUpstreamUnavailable: a PubMed transport call failed.
	ErrUpstreamUnavailable = errors.New("pubmed request failed")

	// ErrUpstreamMalformed: PubMed answered but the body did not parse.
	ErrUpstreamMalformed = errors.New("pubmed response unparseable")

	// ErrRankerUnavailable: the embedding service failed or is not
	// configured.
	ErrRankerUnavailable = errors.New("semantic ranking unavailable")
)

// neutralScore is assigned when ranking is skipped (non-semantic modes).
const neutralScore = 0.5

// TermResolver yields a canonical MeSH descriptor for a free-text
// query, or "" when none applies. Resolution must be best-effort and
// silent.
type TermResolver interface {
	Resolve(ctx context.Context, query string) string
}

// EncoderSource supplies the embedding encoder on demand, so that the
// shared encoder is only initialized when a semantic request needs it.
type EncoderSource func() (embed.Encoder, error)

// Pipeline wires the search stages against their collaborators.
type Pipeline struct {
	EUtils   *eutils.Client
	Resolver TermResolver
	Encoder  EncoderSource
	Log      *slog.Logger
}

// NewPipeline assembles a pipeline. A nil logger falls back to the
// default slog logger.
func NewPipeline(client *eutils.Client, resolver TermResolver, enc EncoderSource, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{EUtils: client, Resolver: resolver, Encoder: enc, Log: log}
}

// Run executes one search request end to end. Empty queries and empty
// candidate or filtered sets produce successful empty responses; only
// genuine upstream or service faults return errors.
func (p *Pipeline) Run(ctx context.Context, req types.SearchRequest) (types.SearchResponse, error) {
	start := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return emptyResponse(0), nil
	}

	ids, total, err := p.retrieveCandidates(ctx, query, req.Retmax)
	if err != nil {
		return types.SearchResponse{}, err
	}
	if len(ids) == 0 {
		return emptyResponse(0), nil
	}

	records, err := p.fetchDetails(ctx, ids)
	if err != nil {
		return types.SearchResponse{}, err
	}

	records = FilterByMode(query, records, req.Mode)
	if len(records) == 0 {
		return emptyResponse(total), nil
	}

	var scored []types.ScoredRecord
	if req.Mode == types.ModeSemantic {
		// Re-run the (cached) expansion to recover the descriptor
		// used for the exact-match boost.
		_, term := p.expandQuery(ctx, query)
		scored, err = p.rankSemantically(ctx, query, records, req.UseMesh, term)
		if err != nil {
			return types.SearchResponse{}, err
		}
	} else {
		scored = make([]types.ScoredRecord, len(records))
		for i, r := range records {
			scored[i] = types.ScoredRecord{Score: neutralScore, Record: r}
		}
	}

	window := req.MaxResults
	if window < 0 {
		window = 0
	}
	if len(scored) > window {
		scored = scored[:window]
	}

	resp := types.SearchResponse{
		ResultsRange: resultsRange(len(scored)),
		TotalResults: total,
		Results:      scored,
	}
	p.Log.Info("search completed",
		slog.Int("results", len(scored)),
		slog.Int("total", total),
		slog.String("mode", string(req.Mode)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func emptyResponse(total int) types.SearchResponse {
	return types.SearchResponse{
		ResultsRange: "0-0",
		TotalResults: total,
		Results:      []types.ScoredRecord{},
	}
}

// resultsRange formats the 1-based window descriptor for n returned
// results.
func resultsRange(n int) string {
	if n == 0 {
		return "0-0"
	}
	return fmt.Sprintf("1-%d", n)
}
