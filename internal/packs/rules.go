package packs

import (
	"fmt"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Rule recommends Pack when When evaluates to true against a blueprint.
type Rule struct {
	Pack string
	When string
}

// DefaultRules always recommend workflows and standards, and add backend
// or frontend when the matching capability is enabled.
var DefaultRules = []Rule{
	{Pack: "workflows", When: "true"},
	{Pack: "standards", When: "true"},
	{Pack: "backend", When: "capabilities?.backend?.enabled == true"},
	{Pack: "frontend", When: "capabilities?.frontend?.enabled == true"},
}

// Recommender evaluates compiled rules against blueprint documents.
type Recommender struct {
	rules    []Rule
	programs []*exprvm.Program
}

// NewRecommender compiles rules. Undefined variables evaluate to nil so a
// blueprint without a capabilities block simply matches nothing.
func NewRecommender(rules []Rule) (*Recommender, error) {
	r := &Recommender{rules: rules}
	for _, rule := range rules {
		program, err := exprlang.Compile(rule.When,
			exprlang.Env(map[string]any{}),
			exprlang.AllowUndefinedVariables(),
			exprlang.AsBool(),
		)
		if err != nil {
			return nil, fmt.Errorf("compiling rule for pack %q: %w", rule.Pack, err)
		}
		r.programs = append(r.programs, program)
	}
	return r, nil
}

// Recommend returns the recommended packs for doc in canonical order. A
// rule that fails to evaluate against doc, for example because a
// capability is not an object, does not match.
func (r *Recommender) Recommend(doc any) []string {
	env, _ := doc.(map[string]any)
	if env == nil {
		env = map[string]any{}
	}
	var out []string
	for i, program := range r.programs {
		result, err := exprlang.Run(program, env)
		if err != nil {
			continue
		}
		if ok, _ := result.(bool); ok {
			out = append(out, r.rules[i].Pack)
		}
	}
	return Normalize(out)
}

var (
	defaultRecommender *Recommender
	defaultOnce        sync.Once
	defaultErr         error
)

// Recommend evaluates DefaultRules against doc.
func Recommend(doc any) ([]string, error) {
	defaultOnce.Do(func() {
		defaultRecommender, defaultErr = NewRecommender(DefaultRules)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultRecommender.Recommend(doc), nil
}
