package finder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemamark/schemamark/internal/core/model"
)

// mockSuggest is a canned remote suggestion service.
type mockSuggest struct {
	urls []string
	err  error
}

func (m *mockSuggest) Suggest(ctx context.Context, term string) ([]string, error) {
	return m.urls, m.err
}

func TestFindCatalogOnly(t *testing.T) {
	f := New(DefaultCatalog(), nil, nil)

	candidates, err := f.Find(context.Background(), Query{Name: "Xolair", GenericName: "omalizumab"})
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	// Very High priority sources rank first; FDA leads the default catalog.
	assert.Equal(t, "FDA", candidates[0].Name)
	assert.Equal(t, PriorityVeryHigh, candidates[0].Priority)

	// Ranking is monotone in priority.
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t,
			priorityRank(candidates[i-1].Priority),
			priorityRank(candidates[i].Priority))
	}
}

func TestFindPrefersGenericTerm(t *testing.T) {
	f := New(DefaultCatalog(), nil, nil)

	candidates, err := f.Find(context.Background(), Query{Name: "Xolair", GenericName: "omalizumab"})
	require.NoError(t, err)

	var wikipedia string
	for _, c := range candidates {
		if c.Name == "Wikipedia" {
			wikipedia = c.URL
		}
	}
	assert.Contains(t, wikipedia, "omalizumab")
	assert.NotContains(t, wikipedia, "Xolair")
}

func TestFindSkipsGenericTemplatesWithoutGeneric(t *testing.T) {
	f := New(DefaultCatalog(), nil, nil)

	candidates, err := f.Find(context.Background(), Query{Name: "Xolair"})
	require.NoError(t, err)

	for _, c := range candidates {
		assert.NotEqual(t, "FDA", c.Name, "FDA template needs a generic name")
	}
}

func TestFindEmptyNameRejected(t *testing.T) {
	f := New(DefaultCatalog(), nil, nil)

	_, err := f.Find(context.Background(), Query{GenericName: "omalizumab"})
	assert.Error(t, err)
	assert.IsType(t, &model.ValidationError{}, err)
}

func TestFindNoSources(t *testing.T) {
	f := New(nil, nil, nil)

	_, err := f.Find(context.Background(), Query{Name: "Xolair"})
	assert.ErrorIs(t, err, model.ErrNoSources)
}

func TestFindMergesSuggestions(t *testing.T) {
	suggest := &mockSuggest{urls: []string{
		"https://en.wikipedia.org/wiki/Omalizumab",
		"https://evil.example.com/not-allowed",
		"not a url",
	}}
	f := New(DefaultCatalog(), suggest, []string{"en.wikipedia.org"})

	candidates, err := f.Find(context.Background(), Query{Name: "Xolair", GenericName: "omalizumab"})
	require.NoError(t, err)

	var suggested []model.SourceCandidate
	for _, c := range candidates {
		if c.Category == "Remote Suggestions" {
			suggested = append(suggested, c)
		}
	}
	require.Len(t, suggested, 1)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Omalizumab", suggested[0].URL)
	assert.Equal(t, PriorityLow, suggested[0].Priority)
}

func TestFindSuggestionFailureIsServiceUnavailable(t *testing.T) {
	suggest := &mockSuggest{err: fmt.Errorf("connection refused")}
	f := New(DefaultCatalog(), suggest, nil)

	_, err := f.Find(context.Background(), Query{Name: "Xolair"})
	assert.True(t, errors.Is(err, model.ErrServiceUnavailable))
	assert.False(t, errors.Is(err, model.ErrNoSources))
}

func TestExpandTemplateEscapesTerm(t *testing.T) {
	q := Query{Name: "Brand Name", GenericName: "acetyl salicylic acid"}
	u := expandTemplate("https://pubmed.ncbi.nlm.nih.gov/?term={term}", q)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/?term=acetyl+salicylic+acid", u)

	u = expandTemplate("https://example.org/{name}-{generic}-information", q)
	assert.Equal(t, "https://example.org/brand-name-acetyl-salicylic-acid-information", u)
}

func TestDefaultCatalogTemplatesAreWellFormed(t *testing.T) {
	f := New(DefaultCatalog(), nil, nil)

	candidates, err := f.Find(context.Background(), Query{Name: "Tylenol", GenericName: "acetaminophen"})
	require.NoError(t, err)
	assert.Len(t, candidates, len(DefaultCatalog()))
	for _, c := range candidates {
		assert.NotContains(t, c.URL, "{", "unexpanded placeholder in %s", c.Name)
	}
}
