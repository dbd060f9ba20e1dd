// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-search/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	PMID           string    `yaml:"PMID,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes search results as a CSL-YAML list to w.
func FormatCSL(resp types.SearchResponse, w io.Writer) error {
	items := make([]CSLItem, len(resp.Results))
	for i, r := range resp.Results {
		items[i] = toCSLItem(r.Record)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts an ArticleRecord to a CSLItem. The item id prefers
// the DOI, falling back to the PMID.
func toCSLItem(r types.ArticleRecord) CSLItem {
	item := CSLItem{
		ID:             r.DOI,
		Type:           "article-journal",
		Title:          r.Title,
		Abstract:       r.Abstract,
		ContainerTitle: r.Journal,
		DOI:            r.DOI,
		PMID:           r.PMID,
		URL:            r.URLFullText,
	}
	if item.ID == "" {
		item.ID = "pmid-" + r.PMID
	}

	for _, name := range strings.Split(r.Authors, ", ") {
		if name = strings.TrimSpace(name); name != "" {
			item.Author = append(item.Author, parseAuthorName(name))
		}
	}

	if r.Year != 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}

	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
