package integrations

import (
	"fmt"
	"strings"
)

// Provider identifies an AI tool whose wrapper directory the sync script
// maintains.
type Provider string

const (
	Codex  Provider = "codex"
	Claude Provider = "claude"
)

// Both is the shorthand accepted for every provider at once.
const Both = "both"

// AllProviders returns all supported providers in sync order.
func AllProviders() []Provider {
	return []Provider{Codex, Claude}
}

// ParseProvider converts a string to a Provider, returning false if invalid.
func ParseProvider(s string) (Provider, bool) {
	switch s {
	case "codex":
		return Codex, true
	case "claude":
		return Claude, true
	default:
		return "", false
	}
}

// ParseProviders validates a --providers value: "both", a single provider,
// or a comma-separated list. It returns the providers it names.
func ParseProviders(value string) ([]Provider, error) {
	v := strings.TrimSpace(value)
	if v == "" || v == Both {
		return AllProviders(), nil
	}
	var out []Provider
	seen := map[Provider]bool{}
	for _, part := range strings.Split(v, ",") {
		p, ok := ParseProvider(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (valid: both, codex, claude)", strings.TrimSpace(part))
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}
