// Package finder produces candidate authoritative URLs to cite as sameAs
// targets for a drug. Candidates come from a catalog of trusted sources,
// optionally augmented by a remote suggestion service.
package finder

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/lookup"
	"github.com/schemamark/schemamark/internal/weburl"
)

// Query carries the lookup terms for one find call.
type Query struct {
	Name        string
	GenericName string
	DrugClass   string
}

// term returns the preferred search term: the generic name when known.
func (q Query) term() string {
	if q.GenericName != "" {
		return q.GenericName
	}
	return q.Name
}

type Finder struct {
	catalog   []Source
	suggest   lookup.SuggestClient
	allowlist map[string]bool
}

// New builds a finder over the given catalog. suggest may be nil for
// catalog-only operation. allowlist, when non-empty, restricts remote
// suggestions to the listed domains; catalog entries are trusted as-is.
func New(catalog []Source, suggest lookup.SuggestClient, allowlist []string) *Finder {
	allowed := make(map[string]bool, len(allowlist))
	for _, d := range allowlist {
		allowed[strings.ToLower(d)] = true
	}
	return &Finder{catalog: catalog, suggest: suggest, allowlist: allowed}
}

// Find returns sameAs candidates ranked by source priority, catalog order
// preserved within a priority tier. Results are finite and single-shot:
// remote suggestions reflect the service's state at call time.
//
// An empty result is model.ErrNoSources. A remote suggestion failure wraps
// model.ErrServiceUnavailable; retrying is the caller's decision.
func (f *Finder) Find(ctx context.Context, q Query) ([]model.SourceCandidate, error) {
	if q.Name == "" {
		return nil, model.NewValidationError("name", "drug name is required")
	}

	var candidates []model.SourceCandidate
	seen := make(map[string]bool)

	for _, src := range f.catalog {
		u := expandTemplate(src.URLTemplate, q)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		candidates = append(candidates, model.SourceCandidate{
			Name:     src.Name,
			URL:      u,
			SiteType: src.SiteType,
			Category: src.Category,
			Priority: src.Priority,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return priorityRank(candidates[i].Priority) < priorityRank(candidates[j].Priority)
	})

	if f.suggest != nil {
		suggested, err := f.suggest.Suggest(ctx, q.term())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
		}
		for _, u := range suggested {
			if seen[u] || weburl.ValidateAbsolute(u) != nil {
				continue
			}
			if len(f.allowlist) > 0 && !f.allowlist[strings.ToLower(weburl.ExtractDomain(u))] {
				continue
			}
			seen[u] = true
			candidates = append(candidates, model.SourceCandidate{
				Name:     weburl.ExtractDomain(u),
				URL:      u,
				SiteType: "Suggested",
				Category: "Remote Suggestions",
				Priority: PriorityLow,
			})
		}
	}

	if len(candidates) == 0 {
		return nil, model.ErrNoSources
	}
	return candidates, nil
}

// expandTemplate substitutes {name}, {generic}, and {term} placeholders.
// {name} and {generic} are slugged the way regulatory pages address drugs;
// {term} is query-escaped. Templates needing a generic name are skipped
// when none was supplied.
func expandTemplate(tmpl string, q Query) string {
	if strings.Contains(tmpl, "{generic}") && q.GenericName == "" {
		return ""
	}
	out := tmpl
	out = strings.ReplaceAll(out, "{name}", slug(q.Name))
	out = strings.ReplaceAll(out, "{generic}", slug(q.GenericName))
	out = strings.ReplaceAll(out, "{term}", url.QueryEscape(q.term()))
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
