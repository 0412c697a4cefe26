package model

import "time"

// MarkupDocument is one generation session's output: an ordered set of
// entities, each independently serializable. It is discarded after
// serialization; the engine keeps no copy.
type MarkupDocument struct {
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	Entities  []Entity  `json:"entities"`
}

// MarkupBlock is an existing structured-data block located in a page.
// Raw is the JSON payload between the script tags, kept opaque by the
// analyzer. Offsets are byte positions in the original page text:
// Start/End span the whole script element, InnerStart/InnerEnd the payload.
type MarkupBlock struct {
	Raw        string `json:"raw"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	InnerStart int    `json:"inner_start"`
	InnerEnd   int    `json:"inner_end"`
}

// PageDocument is a page under analysis or injection: the raw text plus the
// structured-data blocks found in it. Created per request, never retained.
type PageDocument struct {
	HTML   string        `json:"html"`
	Blocks []MarkupBlock `json:"blocks"`
}

// SourceCandidate is one authoritative page proposed as a sameAs target.
type SourceCandidate struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	SiteType string `json:"site_type"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}
