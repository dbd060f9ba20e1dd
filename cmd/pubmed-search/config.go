// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultEmbeddingTimeout = 60 * time.Second
	defaultUserAgent        = "pubmed-search/0.1"
	defaultPort             = "8000"
	defaultEmbeddingModel   = "all-mpnet-base-v2"
)

// defaultOrigins are the local frontend and API origins allowed by CORS
// when none are configured.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:8000",
}

// serviceConfig assembles the full service configuration from viper,
// applying defaults for anything unset. The NCBI api_key falls back to
// the ncbi-api-key secret.
func serviceConfig() types.ServiceConfig {
	cfg := types.ServiceConfig{
		EUtils: types.EUtilsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("eutils.timeout"),
				UserAgent: viper.GetString("eutils.user_agent"),
			},
			APIKey: secretDefault("ncbi-api-key", viper.GetString("eutils.api_key")),
		},
		Embedding: types.EmbeddingConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("embedding.timeout"),
				UserAgent: viper.GetString("embedding.user_agent"),
			},
			BaseURL: viper.GetString("embedding.base_url"),
			Model:   viper.GetString("embedding.model"),
		},
		Server: types.ServerConfig{
			Port:           viper.GetString("server.port"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
	}

	if cfg.EUtils.Timeout == 0 {
		cfg.EUtils.Timeout = defaultTimeout
	}
	if cfg.EUtils.UserAgent == "" {
		cfg.EUtils.UserAgent = defaultUserAgent
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = defaultEmbeddingTimeout
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = defaultEmbeddingModel
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = defaultOrigins
	}
	return cfg
}
