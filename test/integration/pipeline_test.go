//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemamark/schemamark/internal/config"
	"github.com/schemamark/schemamark/internal/core"
	"github.com/schemamark/schemamark/internal/core/builder"
	"github.com/schemamark/schemamark/internal/core/finder"
	"github.com/schemamark/schemamark/internal/core/injector"
	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/core/serializer"
	"github.com/schemamark/schemamark/internal/server"
)

// TestAcetaminophenScenario walks the full pipeline for the canonical
// example: build, serialize, inject into a bare page, re-analyze, decode.
func TestAcetaminophenScenario(t *testing.T) {
	engine := core.NewEngine(finder.New(finder.DefaultCatalog(), nil, nil), injector.PolicyReplace)

	doc, block, err := engine.GenerateDrug(builder.DrugInput{
		Name:   "Acetaminophen",
		SameAs: []string{"https://www.fda.gov/drug/acetaminophen"},
	})
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	assert.Contains(t, string(block), "Acetaminophen")
	assert.Contains(t, string(block), "https://www.fda.gov/drug/acetaminophen")

	pageHTML := `<html><head></head><body>...</body></html>`
	updated, err := engine.InjectEntity(pageHTML, doc.Entities[0])
	require.NoError(t, err)

	// Block sits inside the head; body untouched.
	headEnd := strings.Index(updated, "</head>")
	require.Greater(t, headEnd, 0)
	assert.Contains(t, updated[:headEnd], "application/ld+json")
	assert.True(t, strings.HasSuffix(updated, "<body>...</body></html>"))

	page, err := engine.AnalyzePage(updated)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)

	decoded, err := serializer.Decode([]byte(page.Blocks[0].Raw))
	require.NoError(t, err)
	assert.Equal(t, doc.Entities[0], decoded)
}

// TestHTTPSurfaceFlow drives the same pipeline through the gin API.
func TestHTTPSurfaceFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv, err := server.NewServer(config.Default())
	require.NoError(t, err)
	router := srv.SetupRouter()

	// Generate a trial schema.
	trialBody, _ := json.Marshal(map[string]any{
		"trial_id": "NCT00377572",
		"title":    "A Study of Xolair in Patients With Moderate to Severe Persistent Asthma",
		"status":   "Completed",
		"sponsor":  "Genentech",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/schemas/trial", bytes.NewReader(trialBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Inject it into a page.
	injectBody, _ := json.Marshal(map[string]any{
		"html": `<html><head><title>Trial results</title></head><body><h1>Xolair</h1></body></html>`,
		"trial": map[string]any{
			"trial_id": "NCT00377572",
			"status":   "Completed",
		},
	})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/inject", bytes.NewReader(injectBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var injectResp struct {
		HTML string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &injectResp))

	// Re-analyze via the API and confirm exactly one block.
	analyzeBody, _ := json.Marshal(map[string]any{"html": injectResp.HTML})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(analyzeBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var analyzeResp struct {
		Count  int                 `json:"count"`
		Blocks []model.MarkupBlock `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analyzeResp))
	require.Equal(t, 1, analyzeResp.Count)
	assert.Contains(t, analyzeResp.Blocks[0].Raw, "NCT00377572")
}

// TestReplacePolicyOnRepeatedInjection covers the same-type policy end to
// end: injecting twice under the replace policy leaves one block.
func TestReplacePolicyOnRepeatedInjection(t *testing.T) {
	engine := core.NewEngine(finder.New(finder.DefaultCatalog(), nil, nil), injector.PolicyReplace)

	first, err := builder.Drug(builder.DrugInput{Name: "Acetaminophen"})
	require.NoError(t, err)
	second, err := builder.Drug(builder.DrugInput{Name: "Paracetamol"})
	require.NoError(t, err)

	pageHTML := `<html><head></head><body></body></html>`
	updated, err := engine.InjectEntity(pageHTML, first)
	require.NoError(t, err)
	updated, err = engine.InjectEntity(updated, second)
	require.NoError(t, err)

	page, err := engine.AnalyzePage(updated)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)
	assert.Contains(t, page.Blocks[0].Raw, "Paracetamol")
	assert.NotContains(t, updated, "Acetaminophen")
}

// TestFinderWithContextCancellation confirms the lookup path honors ctx.
func TestFinderWithContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	suggest := suggestFunc(func(ctx context.Context, term string) ([]string, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-blocked:
			return nil, nil
		}
	})
	f := finder.New(finder.DefaultCatalog(), suggest, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Find(ctx, finder.Query{Name: "Xolair"})
	assert.ErrorIs(t, err, model.ErrServiceUnavailable)
}

type suggestFunc func(ctx context.Context, term string) ([]string, error)

func (f suggestFunc) Suggest(ctx context.Context, term string) ([]string, error) {
	return f(ctx, term)
}
