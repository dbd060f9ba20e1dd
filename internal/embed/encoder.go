// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed provides the text embedding client used for semantic
// ranking. The service is an external collaborator: given a batch of
// texts it returns one vector per text, order-preserving. Vectors are
// normalized to unit length client-side so downstream scoring can rely
// on them.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// Encoder turns a batch of texts into one embedding vector per text.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Client calls an Ollama-compatible embedding endpoint
// (POST {base}/api/embed).
type Client struct {
	baseURL string
	model   string
	http    *http.Client
}

var _ Encoder = (*Client)(nil)

// NewClient builds an embedding client from config, applying defaults
// for the timeout and model.
func NewClient(cfg types.EmbeddingConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "all-mpnet-base-v2"
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Encode embeds all texts in a single call and returns unit-normalized
// vectors in input order.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()

	payload, err := json.Marshal(embedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshaling embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned HTTP %d", resp.StatusCode)
	}

	var body embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing embed response: %w", err)
	}
	if len(body.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(body.Embeddings), len(texts))
	}

	for _, v := range body.Embeddings {
		normalize(v)
	}

	slog.Debug("embed batch completed",
		slog.Int("texts", len(texts)),
		slog.String("model", c.model),
		slog.Duration("elapsed", time.Since(start)),
	)
	return body.Embeddings, nil
}

// normalize scales v to unit length in place. Zero vectors are left
// untouched.
func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}

// The encoder is a process-wide shared resource: created lazily on
// first use and reused read-only by all requests afterwards. The mutex
// makes concurrent first callers block instead of racing into a second
// initialization.
var (
	sharedMu sync.Mutex
	shared   *Client
)

// Shared returns the process-wide encoder, creating it on first call.
// It fails when the embedding service is not configured.
func Shared(cfg types.EmbeddingConfig) (Encoder, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return shared, nil
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embedding service base URL is not configured")
	}
	slog.Info("initializing embedding client",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model),
	)
	shared = NewClient(cfg)
	return shared, nil
}
