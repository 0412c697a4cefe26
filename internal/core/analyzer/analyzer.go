// Package analyzer locates existing structured-data blocks in raw page
// text. Fragments are extracted with their byte offsets and kept opaque:
// nothing here validates or interprets the JSON payloads.
package analyzer

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/schemamark/schemamark/internal/core/model"
)

const jsonLDType = "application/ld+json"

// Analyze scans page text for <script type="application/ld+json"> blocks.
// A page with no blocks yields an empty result, not an error. A
// *model.ParseError is returned only when the input has no markup structure
// at all.
func Analyze(pageHTML string) (*model.PageDocument, error) {
	if strings.TrimSpace(pageHTML) == "" {
		return nil, &model.ParseError{Reason: "page text is empty"}
	}

	doc := &model.PageDocument{HTML: pageHTML}

	z := html.NewTokenizer(strings.NewReader(pageHTML))
	pos := 0
	sawTag := false

	// In-flight block state while between a matching <script> start tag and
	// its end tag.
	inBlock := false
	var blockStart, innerStart int
	var payload strings.Builder

	for {
		tt := z.Next()
		raw := z.Raw()
		tokenStart := pos
		pos += len(raw)

		switch tt {
		case html.ErrorToken:
			// EOF. An unterminated block is discarded rather than guessed at.
			if !sawTag {
				return nil, &model.ParseError{Reason: "no markup structure found"}
			}
			return doc, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			sawTag = true
			name, hasAttr := z.TagName()
			if string(name) != "script" || tt == html.SelfClosingTagToken {
				continue
			}
			if !hasAttr || !isJSONLDScript(z) {
				continue
			}
			inBlock = true
			blockStart = tokenStart
			innerStart = pos
			payload.Reset()

		case html.EndTagToken:
			sawTag = true
			name, _ := z.TagName()
			if !inBlock || string(name) != "script" {
				continue
			}
			doc.Blocks = append(doc.Blocks, model.MarkupBlock{
				Raw:        payload.String(),
				Start:      blockStart,
				End:        pos,
				InnerStart: innerStart,
				InnerEnd:   tokenStart,
			})
			inBlock = false

		case html.TextToken:
			if inBlock {
				payload.Write(raw)
			}

		case html.DoctypeToken, html.CommentToken:
			sawTag = true
		}
	}
}

// isJSONLDScript reports whether the current start tag carries
// type="application/ld+json". Must be called immediately after TagName.
func isJSONLDScript(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "type" &&
			strings.EqualFold(strings.TrimSpace(string(val)), jsonLDType) {
			return true
		}
		if !more {
			return false
		}
	}
}
