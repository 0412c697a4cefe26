package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemamark/schemamark/internal/core/model"
)

func TestAnalyzeNoBlocks(t *testing.T) {
	page, err := Analyze(`<html><head><title>Aspirin</title></head><body><p>hello</p></body></html>`)

	require.NoError(t, err)
	assert.Empty(t, page.Blocks)
}

func TestAnalyzeSingleBlock(t *testing.T) {
	payload := `{"@context": "https://schema.org", "@type": "Drug", "name": "Aspirin"}`
	html := `<html><head><script type="application/ld+json">` + payload + `</script></head><body></body></html>`

	page, err := Analyze(html)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)

	b := page.Blocks[0]
	assert.Equal(t, payload, b.Raw)
	assert.Equal(t, payload, html[b.InnerStart:b.InnerEnd])
	assert.Equal(t, strings.Index(html, "<script"), b.Start)
	assert.Equal(t, strings.Index(html, "</script>")+len("</script>"), b.End)
}

func TestAnalyzeMultipleBlocksInOrder(t *testing.T) {
	html := `<html><head>` +
		`<script type="application/ld+json">{"@type": "Drug"}</script>` +
		`<script type="application/ld+json">{"@type": "MedicalTrial"}</script>` +
		`</head><body></body></html>`

	page, err := Analyze(html)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 2)
	assert.Contains(t, page.Blocks[0].Raw, "Drug")
	assert.Contains(t, page.Blocks[1].Raw, "MedicalTrial")
	assert.Less(t, page.Blocks[0].End, page.Blocks[1].Start)
}

func TestAnalyzeIgnoresOtherScripts(t *testing.T) {
	html := `<html><head>` +
		`<script>var x = 1;</script>` +
		`<script type="text/javascript">var y = 2;</script>` +
		`</head><body></body></html>`

	page, err := Analyze(html)
	require.NoError(t, err)
	assert.Empty(t, page.Blocks)
}

func TestAnalyzeTypeAttributeCaseInsensitive(t *testing.T) {
	html := `<html><head><script type="APPLICATION/LD+JSON">{"@type": "Drug"}</script></head></html>`

	page, err := Analyze(html)
	require.NoError(t, err)
	assert.Len(t, page.Blocks, 1)
}

func TestAnalyzeFragmentsAreOpaque(t *testing.T) {
	// Invalid JSON inside the block is still extracted; the analyzer does
	// not interpret payloads.
	html := `<html><head><script type="application/ld+json">{not json</script></head></html>`

	page, err := Analyze(html)
	require.NoError(t, err)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "{not json", page.Blocks[0].Raw)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := Analyze("")
	assert.IsType(t, &model.ParseError{}, err)

	_, err = Analyze("   \n\t ")
	assert.IsType(t, &model.ParseError{}, err)
}

func TestAnalyzePlainTextInput(t *testing.T) {
	_, err := Analyze("just some plain text, nothing resembling markup")
	assert.IsType(t, &model.ParseError{}, err)
}

func TestAnalyzeFragmentWithoutHTMLRoot(t *testing.T) {
	// A fragment is still page markup even without <html>.
	page, err := Analyze(`<div><p>content</p></div>`)

	require.NoError(t, err)
	assert.Empty(t, page.Blocks)
}
