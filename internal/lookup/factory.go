package lookup

import (
	"fmt"
	"strings"

	"github.com/schemamark/schemamark/internal/config"
)

// NewClient builds the configured suggestion client. Provider "none" (or
// empty) returns nil: the finder then runs on its catalog alone.
func NewClient(cfg config.FinderConfig) (SuggestClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "none":
		return nil, nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	default:
		return nil, fmt.Errorf("unsupported lookup provider: %s", provider)
	}
}

// suggestPrompt is shared by the remote providers. The response contract is
// a bare JSON array of URLs so the parser stays trivial.
func suggestPrompt(term string) string {
	return fmt.Sprintf(`You are a medical web research assistant.
List authoritative web pages about the drug %q. Prefer regulatory bodies,
drug databases, clinical trial registries, medical ontologies, and research
indexes.

Output ONLY a JSON array of absolute URLs, most authoritative first.
Example: ["https://www.fda.gov/...", "https://pubchem.ncbi.nlm.nih.gov/..."]
Do not output any other text.`, term)
}
