// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/pubmed-search/internal/search"
	"github.com/pdiddy/pubmed-search/pkg/types"
)

// Searcher runs one search request end to end.
type Searcher interface {
	Run(ctx context.Context, req types.SearchRequest) (types.SearchResponse, error)
}

// Handler exposes the search pipeline over HTTP.
type Handler struct {
	searcher Searcher
	log      *slog.Logger
}

// NewHandler builds a handler. A nil logger falls back to the default
// slog logger.
func NewHandler(s Searcher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{searcher: s, log: log}
}

// Search handles POST /search. Absent body fields keep their documented
// defaults.
func (h *Handler) Search(c echo.Context) error {
	req := types.DefaultSearchRequest()
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.searcher.Run(c.Request().Context(), req)
	if err != nil {
		return h.searchError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// searchError maps pipeline failures onto HTTP responses. Upstream
// faults are gateway errors; ranking faults are internal.
func (h *Handler) searchError(c echo.Context, err error) error {
	h.log.Error("search failed", slog.String("error", err.Error()))
	switch {
	case errors.Is(err, search.ErrUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "pubmed is unavailable"})
	case errors.Is(err, search.ErrUpstreamMalformed):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "pubmed returned an unreadable response"})
	case errors.Is(err, search.ErrRankerUnavailable):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "semantic ranking is unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
