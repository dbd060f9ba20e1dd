// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mesh resolves free-text queries to canonical MeSH descriptor
// names. Resolution is best-effort: lookup failures of any kind degrade
// to "no descriptor" and are never surfaced to the caller.
package mesh

import (
	"bytes"
	"context"
	"encoding/xml"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/pubmed-search/internal/eutils"
)

// cacheSize bounds the resolver cache. Eviction order is not
// behaviorally load-bearing; the cache only saves round trips.
const cacheSize = 256

// Resolver maps free text to a MeSH descriptor via the MeSH database:
// esearch finds the best-matching record id, efetch yields the record's
// DescriptorName. Results, including misses, are cached by the exact
// input string.
type Resolver struct {
	client *eutils.Client
	cache  *lru.Cache[string, string]
}

// NewResolver builds a resolver backed by the given E-utilities client.
func NewResolver(client *eutils.Client) *Resolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](cacheSize)
	return &Resolver{client: client, cache: cache}
}

// Resolve returns the canonical MeSH descriptor name for query, or ""
// when no descriptor could be found. Repeated calls with the same query
// hit the cache without re-querying.
func (r *Resolver) Resolve(ctx context.Context, query string) string {
	if term, ok := r.cache.Get(query); ok {
		return term
	}
	term := r.lookup(ctx, query)
	r.cache.Add(query, term)
	return term
}

// lookup performs the two-step MeSH database query. Every failure path
// returns "" so that query expansion degrades silently.
func (r *Resolver) lookup(ctx context.Context, query string) string {
	page, err := r.client.Search(ctx, "mesh", query, 1, 0)
	if err != nil {
		slog.Debug("mesh search failed", slog.String("query", query), slog.String("error", err.Error()))
		return ""
	}
	if len(page.IDs) == 0 {
		return ""
	}

	body, err := r.client.Fetch(ctx, "mesh", page.IDs[:1])
	if err != nil {
		slog.Debug("mesh fetch failed", slog.String("query", query), slog.String("error", err.Error()))
		return ""
	}
	return descriptorName(body)
}

// descriptorName extracts the first DescriptorName element's text from a
// MeSH efetch XML body. It tolerates both the modern record layout
// (DescriptorRecord/DescriptorName/String) and a bare DescriptorName by
// collecting all character data inside the element.
func descriptorName(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "DescriptorName" {
			continue
		}

		var b strings.Builder
		depth := 1
		for depth > 0 {
			t, err := dec.Token()
			if err != nil {
				return ""
			}
			switch t := t.(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				depth--
			case xml.CharData:
				b.Write(t)
			}
		}
		return strings.TrimSpace(b.String())
	}
}
