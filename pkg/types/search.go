// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-search service.
package types

// Mode selects how candidate articles are filtered and scored.
type Mode string

const (
	// ModeSemantic ranks candidates by embedding similarity to the query.
	ModeSemantic Mode = "semantic"

	// ModeBroad returns candidates in retrieval order with a neutral score.
	ModeBroad Mode = "broad"

	// ModeExactTitle keeps only candidates whose title matches the query
	// exactly (case-insensitive, trimmed).
	ModeExactTitle Mode = "exactTitle"
)

// SearchRequest is the inbound search operation payload.
type SearchRequest struct {
	// Query is the free-text biomedical question or phrase.
	Query string `json:"query" yaml:"query"`

	// Mode selects the retrieval mode (default "semantic"). Unknown values
	// behave like "broad": candidates pass through unfiltered and unranked.
	Mode Mode `json:"mode" yaml:"mode"`

	// UseMesh includes MeSH terms in semantic scoring and enables the
	// exact-match ranking boost. Query expansion itself is always attempted.
	UseMesh bool `json:"use_mesh" yaml:"use_mesh"`

	// MaxResults is the size of the result window returned to the caller.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Retmax is the minimum candidate pool size fetched before ranking.
	// Values below 200 are floored to 200 internally.
	Retmax int `json:"retmax" yaml:"retmax"`
}

// DefaultSearchRequest returns a request populated with the documented
// defaults. Decoding a JSON body into it overwrites only the fields the
// caller actually sent.
func DefaultSearchRequest() SearchRequest {
	return SearchRequest{
		Mode:       ModeSemantic,
		UseMesh:    true,
		MaxResults: 25,
		Retmax:     200,
	}
}

// ArticleRecord is a parsed PubMed citation.
type ArticleRecord struct {
	// Title is the article title; empty when the citation carries none.
	Title string `json:"title" yaml:"title"`

	// Authors is a single formatted string, authors joined by ", ".
	// Collective group names substitute for missing individual names.
	Authors string `json:"authors" yaml:"authors"`

	// Journal is the full journal title, if present.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Year is the publication year; zero when it could not be determined.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Abstract is all abstract segments joined by single spaces, in
	// document order; empty when the citation has no abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// MeshTerms lists MeSH descriptor names in source order. Duplicates
	// are preserved.
	MeshTerms []string `json:"mesh_terms" yaml:"mesh_terms"`

	// PMID, DOI and PMCID are the article identifiers, each optional.
	PMID  string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	DOI   string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMCID string `json:"pmcid,omitempty" yaml:"pmcid,omitempty"`

	// URLPubMed is derived from PMID; never set independently.
	URLPubMed string `json:"url_pubmed,omitempty" yaml:"url_pubmed,omitempty"`

	// URLFullText is the preferred full-text link: PMC, then DOI, then the
	// PubMed page.
	URLFullText string `json:"url_full_text,omitempty" yaml:"url_full_text,omitempty"`
}

// ScoredRecord pairs an article with its relevance score in [0, 1].
type ScoredRecord struct {
	Score  float64       `json:"score" yaml:"score"`
	Record ArticleRecord `json:"record" yaml:"record"`
}

// SearchResponse is the outbound search operation payload.
type SearchResponse struct {
	// ResultsRange is the 1-based window as "start-end", or "0-0" when
	// the response is empty.
	ResultsRange string `json:"results_range" yaml:"results_range"`

	// TotalResults is PubMed's total match count for the expanded query,
	// independent of how many candidates were fetched or ranked.
	TotalResults int `json:"total_results" yaml:"total_results"`

	// Results holds the windowed, ranked records.
	Results []ScoredRecord `json:"results" yaml:"results"`
}
