package blueprint

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/agentx-labs/initkit/internal/packs"
)

var validLayouts = []string{"single", "monorepo"}

// Result is the outcome of Validate.
type Result struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Packs    []string `json:"packs"`
}

// Validate checks the required blueprint fields and reports advisory
// warnings for inconsistent optional ones.
func Validate(b *Blueprint) Result {
	r := Result{Errors: []string{}, Warnings: []string{}, Packs: []string{}}

	root, ok := b.doc.(map[string]any)
	if !ok {
		r.Errors = append(r.Errors, "Blueprint must be a JSON object.")
		return r
	}

	if !isPositiveInt(root["version"]) {
		r.Errors = append(r.Errors, "Blueprint.version must be an integer >= 1.")
	}

	project := object(root["project"])
	if str(project["name"]) == "" {
		r.Errors = append(r.Errors, "project.name is required (string).")
	}
	if str(project["description"]) == "" {
		r.Errors = append(r.Errors, "project.description is required (string).")
	}

	repo := object(root["repo"])
	if !contains(validLayouts, str(repo["layout"])) {
		r.Errors = append(r.Errors, "repo.layout is required and must be one of: "+strings.Join(validLayouts, ", "))
	}
	if str(repo["language"]) == "" {
		r.Errors = append(r.Errors, "repo.language is required (string).")
	}

	caps := object(root["capabilities"])
	if db := object(caps["database"]); db != nil {
		if db["enabled"] == true && str(db["kind"]) == "" {
			r.Warnings = append(r.Warnings, "capabilities.database.enabled=true but capabilities.database.kind is missing.")
		}
	}
	if api := object(caps["api"]); api != nil {
		if style, ok := api["style"]; ok && style != nil {
			if _, isStr := style.(string); !isStr {
				r.Warnings = append(r.Warnings, "capabilities.api.style should be a string.")
			}
		}
	}
	if bpmn := caps["bpmn"]; truthy(bpmn) {
		if _, isBool := object(bpmn)["enabled"].(bool); !isBool {
			r.Warnings = append(r.Warnings, "capabilities.bpmn.enabled should be boolean when present.")
		}
	}

	skills := object(root["skills"])
	if raw, ok := skills["packs"]; ok && raw != nil && !isStringArray(raw) {
		r.Errors = append(r.Errors, "skills.packs must be an array of strings when present.")
	}

	r.Packs = packs.Normalize(b.Packs())
	if !contains(r.Packs, "workflows") {
		r.Warnings = append(r.Warnings, `skills.packs does not include "workflows". This is usually required.`)
	}
	if !contains(r.Packs, "standards") {
		r.Warnings = append(r.Warnings, `skills.packs does not include "standards". This is usually recommended.`)
	}

	r.Warnings = append(r.Warnings, schemaWarnings(root)...)
	r.OK = len(r.Errors) == 0
	return r
}

func isPositiveInt(v any) bool {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i >= 1
		}
		parsed, err := n.Float64()
		if err != nil {
			return false
		}
		f = parsed
	case int:
		return n >= 1
	case int64:
		return n >= 1
	case float64:
		f = n
	default:
		return false
	}
	return f >= 1 && f == math.Trunc(f) && !math.IsInf(f, 0)
}

func isStringArray(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		if _, ok := e.(string); !ok {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
