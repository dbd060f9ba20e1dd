// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
)

// expandQuery builds the PubMed search expression for query and reports
// the MeSH descriptor used, if any. The free text is always scoped to
// title/abstract; a resolved descriptor widens the expression with an
// OR clause over the MeSH index. Pure composition apart from the
// (cached, best-effort) descriptor lookup.
func (p *Pipeline) expandQuery(ctx context.Context, query string) (expanded, term string) {
	base := query + "[Title/Abstract]"
	term = p.Resolver.Resolve(ctx, query)
	if term == "" {
		return base, ""
	}
	return fmt.Sprintf("%s OR %s[MeSH Terms]", base, term), term
}
