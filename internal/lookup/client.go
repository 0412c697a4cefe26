// Package lookup holds the remote suggestion clients behind the source
// finder. A suggestion service proposes authoritative URLs for a drug; the
// finder validates and filters whatever comes back.
package lookup

import "context"

// SuggestClient proposes candidate authoritative URLs for a search term.
// Calls are time-bounded and cancellable through ctx; implementations do
// not retry, that is the caller's decision.
type SuggestClient interface {
	Suggest(ctx context.Context, term string) ([]string, error)
}
