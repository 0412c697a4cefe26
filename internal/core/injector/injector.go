// Package injector splices generated structured-data blocks into existing
// page text. Splicing is pure byte surgery on analyzer offsets: everything
// outside the modified region is preserved exactly.
package injector

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/schemamark/schemamark/internal/core/model"
	"github.com/schemamark/schemamark/internal/core/serializer"
)

// Policy decides what happens when the page already holds a block of the
// same @type as the one being injected.
type Policy string

const (
	// PolicyReplace swaps the existing same-type block in place. Default.
	PolicyReplace Policy = "replace"
	// PolicyAppend leaves existing blocks alone and adds a new one.
	PolicyAppend Policy = "append"
)

type Injector struct {
	policy Policy
}

func New(policy Policy) *Injector {
	if policy == "" {
		policy = PolicyReplace
	}
	return &Injector{policy: policy}
}

// Inject returns the page text with the JSON-LD payload embedded as a
// script element. Under PolicyReplace, an existing block with the same
// @type is replaced in its original position; otherwise the new block goes
// at the end of the head. A *model.InjectionError is returned when the page
// offers no safe insertion point.
func (inj *Injector) Inject(page *model.PageDocument, jsonld []byte, kind model.Kind) (string, error) {
	script := serializer.ScriptTag(jsonld)

	if inj.policy == PolicyReplace {
		for _, b := range page.Blocks {
			if serializer.TypeOf(b.Raw) == string(kind) {
				return page.HTML[:b.Start] + script + page.HTML[b.End:], nil
			}
		}
	}

	return appendToHead(page.HTML, script)
}

// appendToHead inserts the script element just before </head>. Pages with
// an unclosed head get the block right after <head>; pages with no head at
// all get one created after the <html> start tag.
func appendToHead(pageHTML, script string) (string, error) {
	headClose, headOpenEnd, htmlOpenEnd := locateHead(pageHTML)

	switch {
	case headClose >= 0:
		return pageHTML[:headClose] + script + "\n" + pageHTML[headClose:], nil
	case headOpenEnd >= 0:
		return pageHTML[:headOpenEnd] + "\n" + script + pageHTML[headOpenEnd:], nil
	case htmlOpenEnd >= 0:
		return pageHTML[:htmlOpenEnd] + "<head>" + script + "</head>" + pageHTML[htmlOpenEnd:], nil
	default:
		return "", &model.InjectionError{Reason: "page has no head or html element"}
	}
}

// locateHead tokenizes the page and returns three byte offsets, each -1
// when absent: the start of the first </head>, the end of the first <head>
// start tag, and the end of the first <html> start tag.
func locateHead(pageHTML string) (headClose, headOpenEnd, htmlOpenEnd int) {
	headClose, headOpenEnd, htmlOpenEnd = -1, -1, -1

	z := html.NewTokenizer(strings.NewReader(pageHTML))
	pos := 0
	for {
		tt := z.Next()
		raw := z.Raw()
		tokenStart := pos
		pos += len(raw)

		switch tt {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "head":
				if headOpenEnd < 0 {
					headOpenEnd = pos
				}
			case "html":
				if htmlOpenEnd < 0 {
					htmlOpenEnd = pos
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "head" && headClose < 0 {
				headClose = tokenStart
			}
		}
	}
}
