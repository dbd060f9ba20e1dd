// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EUtilsConfig holds settings for the NCBI E-utilities client.
type EUtilsConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional NCBI api_key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// EmbeddingConfig holds settings for the text embedding service.
type EmbeddingConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the embedding service endpoint (e.g. "http://localhost:11434").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the embedding model identifier (default "all-mpnet-base-v2").
	Model string `json:"model" yaml:"model"`
}

// ServerConfig holds settings for the inbound HTTP server.
type ServerConfig struct {
	// Port is the TCP port the server listens on (default "8000").
	Port string `json:"port" yaml:"port"`

	// AllowedOrigins lists the origins permitted by the CORS policy.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// ServiceConfig groups all component configurations.
type ServiceConfig struct {
	EUtils    EUtilsConfig    `json:"eutils" yaml:"eutils"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
