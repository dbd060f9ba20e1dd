// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/pubmed-search/internal/embed"
	"github.com/pdiddy/pubmed-search/internal/eutils"
	"github.com/pdiddy/pubmed-search/pkg/types"
)

// --- test doubles ---

// stubResolver returns a fixed descriptor for every query.
type stubResolver struct {
	term string
}

func (s stubResolver) Resolve(_ context.Context, _ string) string { return s.term }

// fakeEncoder returns canned vectors keyed by input text; unknown texts
// get the fallback vector.
type fakeEncoder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (f *fakeEncoder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = f.fallback
		}
	}
	return out, nil
}

func encoderSource(enc embed.Encoder, err error) EncoderSource {
	return func() (embed.Encoder, error) { return enc, err }
}

// pubmedHandler serves esearch JSON and efetch XML for a fixed corpus.
type pubmedHandler struct {
	ids      []string
	total    int
	articles string // efetch response body
	requests int
}

func (h *pubmedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests++
	switch {
	case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
		retstart := 0
		fmt.Sscanf(r.URL.Query().Get("retstart"), "%d", &retstart)
		retmax := 0
		fmt.Sscanf(r.URL.Query().Get("retmax"), "%d", &retmax)
		end := retstart + retmax
		if end > len(h.ids) {
			end = len(h.ids)
		}
		var page []string
		if retstart < len(h.ids) {
			page = h.ids[retstart:end]
		}
		json.NewEncoder(w).Encode(map[string]any{
			"esearchresult": map[string]any{
				"count":  fmt.Sprintf("%d", h.total),
				"idlist": page,
			},
		})
	case strings.HasSuffix(r.URL.Path, "/efetch.fcgi"):
		fmt.Fprint(w, h.articles)
	default:
		http.NotFound(w, r)
	}
}

func testPipeline(ts *httptest.Server, resolver TermResolver, src EncoderSource) *Pipeline {
	client := eutils.NewClient(types.EUtilsConfig{})
	client.BaseURL = ts.URL
	client.HTTP = ts.Client()
	return NewPipeline(client, resolver, src, nil)
}

func articleXML(pmid, title string) string {
	return fmt.Sprintf(`<PubmedArticle>
  <MedlineCitation>
    <PMID>%s</PMID>
    <Article>
      <ArticleTitle>%s</ArticleTitle>
      <Journal><Title>Test Journal</Title>
        <JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue>
      </Journal>
      <AuthorList><Author><LastName>Doe</LastName><ForeName>Jane</ForeName></Author></AuthorList>
    </Article>
  </MedlineCitation>
</PubmedArticle>`, pmid, title)
}

func articleSet(articles ...string) string {
	return "<PubmedArticleSet>" + strings.Join(articles, "") + "</PubmedArticleSet>"
}

// --- Run ---

func TestRunEmptyQueryMakesNoRequests(t *testing.T) {
	h := &pubmedHandler{}
	ts := httptest.NewServer(h)
	defer ts.Close()

	p := testPipeline(ts, stubResolver{}, encoderSource(nil, fmt.Errorf("must not be called")))
	req := types.DefaultSearchRequest()
	req.Query = "   "

	resp, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.requests != 0 {
		t.Errorf("outbound requests = %d, want 0", h.requests)
	}
	if resp.ResultsRange != "0-0" || resp.TotalResults != 0 {
		t.Errorf("resp = %+v, want empty response", resp)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil slice", resp.Results)
	}
}

func TestRunNoCandidates(t *testing.T) {
	h := &pubmedHandler{ids: nil, total: 0}
	ts := httptest.NewServer(h)
	defer ts.Close()

	p := testPipeline(ts, stubResolver{}, encoderSource(nil, fmt.Errorf("unused")))
	req := types.DefaultSearchRequest()
	req.Query = "zxqv nonexistent"

	resp, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.ResultsRange != "0-0" || len(resp.Results) != 0 {
		t.Errorf("resp = %+v, want empty response", resp)
	}
}

func TestRunTotalCountIndependentOfWindow(t *testing.T) {
	h := &pubmedHandler{
		ids:      []string{"1", "2", "3"},
		total:    51234,
		articles: articleSet(articleXML("1", "A"), articleXML("2", "B"), articleXML("3", "C")),
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	enc := &fakeEncoder{fallback: []float32{1, 0}}
	p := testPipeline(ts, stubResolver{}, encoderSource(enc, nil))
	req := types.DefaultSearchRequest()
	req.Query = "cancer"
	req.MaxResults = 2

	resp, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.TotalResults != 51234 {
		t.Errorf("TotalResults = %d, want 51234", resp.TotalResults)
	}
	if len(resp.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2 (windowed)", len(resp.Results))
	}
	if resp.ResultsRange != "1-2" {
		t.Errorf("ResultsRange = %q, want 1-2", resp.ResultsRange)
	}
}

func TestRunBroadModeAssignsNeutralScores(t *testing.T) {
	h := &pubmedHandler{
		ids:      []string{"10", "11"},
		total:    2,
		articles: articleSet(articleXML("10", "First"), articleXML("11", "Second")),
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	// The encoder source must never fire outside semantic mode.
	p := testPipeline(ts, stubResolver{}, encoderSource(nil, fmt.Errorf("must not be called")))
	req := types.DefaultSearchRequest()
	req.Query = "heart disease"
	req.Mode = types.ModeBroad

	resp, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.Score != 0.5 {
			t.Errorf("Results[%d].Score = %f, want 0.5", i, r.Score)
		}
	}
}

func TestRunExactTitleFilteredToEmptyKeepsTotal(t *testing.T) {
	h := &pubmedHandler{
		ids:      []string{"10"},
		total:    987,
		articles: articleSet(articleXML("10", "Something Else Entirely")),
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	p := testPipeline(ts, stubResolver{}, encoderSource(nil, fmt.Errorf("unused")))
	req := types.DefaultSearchRequest()
	req.Query = "heart disease"
	req.Mode = types.ModeExactTitle

	resp, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.TotalResults != 987 {
		t.Errorf("TotalResults = %d, want 987", resp.TotalResults)
	}
	if resp.ResultsRange != "0-0" || len(resp.Results) != 0 {
		t.Errorf("resp = %+v, want empty filtered response", resp)
	}
}

func TestRunSemanticEncoderFailure(t *testing.T) {
	h := &pubmedHandler{
		ids:      []string{"10"},
		total:    1,
		articles: articleSet(articleXML("10", "First")),
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	p := testPipeline(ts, stubResolver{}, encoderSource(nil, fmt.Errorf("service down")))
	req := types.DefaultSearchRequest()
	req.Query = "cancer"

	_, err := p.Run(context.Background(), req)
	if !errors.Is(err, ErrRankerUnavailable) {
		t.Fatalf("Run() error = %v, want ErrRankerUnavailable", err)
	}
}

// --- resultsRange ---

func TestResultsRange(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0-0"},
		{1, "1-1"},
		{25, "1-25"},
	}
	for _, tt := range tests {
		if got := resultsRange(tt.n); got != tt.want {
			t.Errorf("resultsRange(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
