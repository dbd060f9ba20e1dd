// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils provides a thin client for the NCBI E-utilities API.
// It exposes the two calls the search pipeline needs: an identifier
// search (esearch, JSON) and a record fetch (efetch, XML), both usable
// against the pubmed and mesh databases.
package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-search/internal/httputil"
	"github.com/pdiddy/pubmed-search/pkg/types"
)

// defaultBase is the production E-utilities endpoint.
const defaultBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client calls the NCBI E-utilities API.
type Client struct {
	// BaseURL is the E-utilities endpoint. Tests point it at an
	// httptest server.
	BaseURL string

	HTTP      *http.Client
	APIKey    string
	UserAgent string
}

// NewClient builds a client from config, applying defaults for the
// timeout and user agent.
func NewClient(cfg types.EUtilsConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "pubmed-search/0.1"
	}
	return &Client{
		BaseURL:   defaultBase,
		HTTP:      &http.Client{Timeout: timeout},
		APIKey:    cfg.APIKey,
		UserAgent: userAgent,
	}
}

// SearchPage is one page of an esearch result.
type SearchPage struct {
	// Count is the database's total match count for the term.
	Count int

	// IDs are the identifiers on this page, in rank order.
	IDs []string
}

// esearch JSON envelope. Count is a decimal string in the wire format.
type esearchEnvelope struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search runs one paginated esearch call against db and returns the ids
// at the given offset plus the database's total match count. A count the
// server reports in an unexpected format degrades to zero rather than
// failing the page.
func (c *Client) Search(ctx context.Context, db, term string, retmax, retstart int) (SearchPage, error) {
	params := url.Values{
		"db":       {db},
		"term":     {term},
		"retmax":   {strconv.Itoa(retmax)},
		"retstart": {strconv.Itoa(retstart)},
		"retmode":  {"json"},
	}

	body, err := c.get(ctx, "/esearch.fcgi", params)
	if err != nil {
		return SearchPage{}, err
	}

	var env esearchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return SearchPage{}, fmt.Errorf("parsing esearch response: %w", err)
	}

	count, err := strconv.Atoi(env.Result.Count)
	if err != nil {
		count = 0
	}
	return SearchPage{Count: count, IDs: env.Result.IDList}, nil
}

// Fetch runs one efetch call for the full id set and returns the raw
// XML body. The caller owns parsing.
func (c *Client) Fetch(ctx context.Context, db string, ids []string) ([]byte, error) {
	params := url.Values{
		"db":      {db},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	return c.get(ctx, "/efetch.fcgi", params)
}

// get issues one GET with the shared headers, api key and 429 retry.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}

	reqURL := c.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("eutils request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eutils returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading eutils response: %w", err)
	}
	return body, nil
}
