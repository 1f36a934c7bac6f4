package packs

import (
	"os"
	"path/filepath"
	"strings"
)

// Order is the canonical order of the known packs.
var Order = []string{"workflows", "standards", "backend", "frontend"}

var prefixes = map[string]string{
	"workflows": "workflows/",
	"standards": "standards/",
	"backend":   "backend/",
	"frontend":  "frontend/",
}

// Prefix returns the sync manifest include prefix for a known pack.
func Prefix(pack string) (string, bool) {
	p, ok := prefixes[pack]
	return p, ok
}

// Known reports whether pack has a prefix mapping.
func Known(pack string) bool {
	_, ok := prefixes[pack]
	return ok
}

// Normalize trims and deduplicates packs, drops empties, and returns the
// known packs in canonical order followed by unknown packs in input order.
func Normalize(packs []string) []string {
	seen := make(map[string]bool, len(packs))
	var cleaned []string
	for _, p := range packs {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		cleaned = append(cleaned, p)
	}

	out := make([]string, 0, len(cleaned))
	for _, p := range Order {
		if seen[p] {
			out = append(out, p)
		}
	}
	for _, p := range cleaned {
		if !Known(p) {
			out = append(out, p)
		}
	}
	return out
}

// Missing returns the packs in want that are absent from have.
func Missing(want, have []string) []string {
	return difference(want, have)
}

// Extra returns the packs in have that are absent from want.
func Extra(want, have []string) []string {
	return difference(have, want)
}

func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, p := range b {
		in[p] = true
	}
	out := []string{}
	for _, p := range a {
		if !in[p] {
			out = append(out, p)
		}
	}
	return out
}

// InstallCheck is the result of looking for a pack under .ai/skills.
type InstallCheck struct {
	Pack      string `json:"pack"`
	Installed bool   `json:"installed"`
	Reason    string `json:"reason,omitempty"`
}

// CheckInstall reports whether the skill directory for pack exists.
func CheckInstall(repoRoot, pack string) InstallCheck {
	prefix, ok := Prefix(pack)
	if !ok {
		return InstallCheck{Pack: pack, Reason: "unknown-pack"}
	}
	rel := filepath.Join(".ai", "skills", strings.TrimSuffix(prefix, "/"))
	if _, err := os.Stat(filepath.Join(repoRoot, rel)); err != nil {
		return InstallCheck{Pack: pack, Reason: "missing " + filepath.ToSlash(rel)}
	}
	return InstallCheck{Pack: pack, Installed: true}
}
