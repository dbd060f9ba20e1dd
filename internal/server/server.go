// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server wires the search pipeline behind an Echo HTTP surface.
package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// New builds the Echo instance with middleware and routes registered.
// The caller owns its lifecycle (Start, Shutdown).
func New(cfg types.ServerConfig, searcher Searcher, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	h := NewHandler(searcher, log)
	e.POST("/search", h.Search)
	e.GET("/health", h.Health)

	return e
}
