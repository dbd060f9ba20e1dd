// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// Base URLs for the derived article links.
const (
	pubmedURLBase = "https://pubmed.ncbi.nlm.nih.gov/"
	pmcURLBase    = "https://www.ncbi.nlm.nih.gov/pmc/articles/"
	doiURLBase    = "https://doi.org/"
)

// fetchDetails retrieves and parses the citations for the full id set
// in one batch call. Missing optional fields degrade to absent values;
// only transport and parse faults are errors.
func (p *Pipeline) fetchDetails(ctx context.Context, ids []string) ([]types.ArticleRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	body, err := p.EUtils.Fetch(ctx, "pubmed", ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var set pubmedArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}

	records := make([]types.ArticleRecord, 0, len(set.Articles))
	for _, a := range set.Articles {
		// A citation without an Article block has no usable metadata.
		if a.Article == nil {
			continue
		}
		records = append(records, buildRecord(a))
	}
	return records, nil
}

// PubMed efetch XML structures, limited to the fields the record needs.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID       string       `xml:"MedlineCitation>PMID"`
	Article    *articleMeta `xml:"MedlineCitation>Article"`
	MeshTerms  []string     `xml:"MedlineCitation>MeshHeadingList>MeshHeading>DescriptorName"`
	ArticleIDs []typedID    `xml:"PubmedData>ArticleIdList>ArticleId"`
}

type articleMeta struct {
	Title         string   `xml:"ArticleTitle"`
	AbstractTexts []string `xml:"Abstract>AbstractText"`
	JournalTitle  string   `xml:"Journal>Title"`
	PubYear       string   `xml:"Journal>JournalIssue>PubDate>Year"`
	MedlineDate   string   `xml:"Journal>JournalIssue>PubDate>MedlineDate"`
	Authors       []author `xml:"AuthorList>Author"`
	ELocationIDs  []typedID `xml:"ELocationID"`
}

type author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

// typedID covers both ArticleId (IdType attr) and ELocationID (EIdType
// attr); whichever attribute is present wins.
type typedID struct {
	IDType  string `xml:"IdType,attr"`
	EIDType string `xml:"EIdType,attr"`
	Value   string `xml:",chardata"`
}

func (id typedID) kind() string {
	if id.IDType != "" {
		return strings.ToLower(id.IDType)
	}
	return strings.ToLower(id.EIDType)
}

// buildRecord maps one parsed citation onto an ArticleRecord, applying
// the field precedence rules.
func buildRecord(a pubmedArticle) types.ArticleRecord {
	meta := a.Article

	r := types.ArticleRecord{
		Title:     meta.Title,
		Journal:   meta.JournalTitle,
		Abstract:  joinAbstract(meta.AbstractTexts),
		Authors:   formatAuthors(meta.Authors),
		MeshTerms: cleanTerms(a.MeshTerms),
		Year:      parseYear(meta.PubYear, meta.MedlineDate),
		PMID:      strings.TrimSpace(a.PMID),
	}

	// One pass over the article id list: first doi and first pmc win;
	// a pubmed-typed id only fills an empty pmid slot.
	for _, id := range a.ArticleIDs {
		val := strings.TrimSpace(id.Value)
		if val == "" {
			continue
		}
		switch id.kind() {
		case "doi":
			if r.DOI == "" {
				r.DOI = val
			}
		case "pmc":
			if r.PMCID == "" {
				r.PMCID = val
			}
		case "pubmed":
			if r.PMID == "" {
				r.PMID = val
			}
		}
	}

	// DOI fallback: electronic location identifiers on the citation.
	if r.DOI == "" {
		for _, id := range meta.ELocationIDs {
			if id.kind() != "doi" {
				continue
			}
			if val := strings.TrimSpace(id.Value); val != "" {
				r.DOI = val
				break
			}
		}
	}

	if r.PMID != "" {
		r.URLPubMed = pubmedURLBase + r.PMID + "/"
	}
	// Full-text preference: free PMC copy, then DOI, then PubMed page.
	switch {
	case r.PMCID != "":
		r.URLFullText = pmcURLBase + r.PMCID + "/"
	case r.DOI != "":
		r.URLFullText = doiURLBase + r.DOI
	default:
		r.URLFullText = r.URLPubMed
	}

	return r
}

// joinAbstract concatenates all non-empty abstract segments with single
// spaces, preserving document order.
func joinAbstract(segments []string) string {
	var parts []string
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// parseYear prefers the structured year and falls back to the leading
// token of a free-text MedlineDate ("2023 Jan-Feb"). Non-numeric input
// yields zero.
func parseYear(year, medlineDate string) int {
	text := strings.TrimSpace(year)
	if text == "" {
		fields := strings.Fields(medlineDate)
		if len(fields) == 0 {
			return 0
		}
		text = fields[0]
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}

// formatAuthors joins all authors with ", ", preferring a collective
// group name over individual given/family names.
func formatAuthors(authors []author) string {
	var names []string
	for _, a := range authors {
		if c := strings.TrimSpace(a.CollectiveName); c != "" {
			names = append(names, c)
			continue
		}
		name := strings.TrimSpace(strings.TrimSpace(a.ForeName) + " " + strings.TrimSpace(a.LastName))
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// cleanTerms trims descriptor names and drops empty ones, keeping
// source order and duplicates.
func cleanTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
