// Package docs checks the four Stage A requirement documents for required
// headings, leftover template placeholders, and unresolved markers.
package docs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// Document is one required Stage A document.
type Document struct {
	Key      string   `yaml:"key"`
	File     string   `yaml:"file"`
	Headings []string `yaml:"headings"`
}

type pattern struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
	Message string `yaml:"message"`
	re      *regexp.Regexp
}

type ruleSet struct {
	Documents    []Document `yaml:"documents"`
	Placeholders []pattern  `yaml:"placeholders"`
	Markers      []pattern  `yaml:"markers"`
}

var (
	rules     ruleSet
	rulesOnce sync.Once
	rulesErr  error
)

func loadRules() (*ruleSet, error) {
	rulesOnce.Do(func() {
		if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
			rulesErr = fmt.Errorf("parsing docs rules: %w", err)
			return
		}
		for _, list := range [][]pattern{rules.Placeholders, rules.Markers} {
			for i := range list {
				re, err := regexp.Compile(list[i].Pattern)
				if err != nil {
					rulesErr = fmt.Errorf("compiling docs rule %q: %w", list[i].Pattern, err)
					return
				}
				list[i].re = re
			}
		}
	})
	return &rules, rulesErr
}

// Documents returns the required Stage A documents in check order.
func Documents() []Document {
	r, err := loadRules()
	if err != nil {
		return nil
	}
	return r.Documents
}

// Options controls Check.
type Options struct {
	// Strict fails the check when any warning is present.
	Strict bool
	// Base, when set, makes paths in messages relative to it.
	Base string
}

// Result is the outcome of Check.
type Result struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Check validates the documents under docsRoot. Only an unreadable rule
// set or document is returned as an error; findings go in the Result.
func Check(docsRoot string, opts Options) (Result, error) {
	res := Result{Errors: []string{}, Warnings: []string{}}
	r, err := loadRules()
	if err != nil {
		return res, err
	}

	for _, doc := range r.Documents {
		path := filepath.Join(docsRoot, doc.File)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				res.Errors = append(res.Errors, "Missing required Stage A doc: "+display(opts.Base, path))
				continue
			}
			return res, fmt.Errorf("reading %s: %w", path, err)
		}
		content := string(data)

		for _, h := range doc.Headings {
			if !strings.Contains(content, h) {
				res.Errors = append(res.Errors, fmt.Sprintf("%s is missing required section/heading: %q", doc.File, h))
			}
		}
		for _, p := range r.Placeholders {
			if p.re.MatchString(content) {
				res.Errors = append(res.Errors, fmt.Sprintf("%s still contains %s. Replace all template placeholders.", doc.File, p.Label))
			}
		}
		for _, m := range r.Markers {
			if m.re.MatchString(content) {
				res.Warnings = append(res.Warnings, doc.File+" "+m.Message)
			}
		}
	}

	res.OK = len(res.Errors) == 0
	if opts.Strict && len(res.Warnings) > 0 {
		res.OK = false
	}
	return res, nil
}

// DocsWritten reports which documents exist, keyed by document key.
func DocsWritten(docsRoot string) map[string]bool {
	out := make(map[string]bool)
	for _, doc := range Documents() {
		_, err := os.Stat(filepath.Join(docsRoot, doc.File))
		out[doc.Key] = err == nil
	}
	return out
}

func display(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
