package blueprint

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/blueprint.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("blueprint.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("blueprint.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// schemaWarnings checks the optional subtrees of doc and returns one
// warning per failing leaf, e.g. "capabilities.backend.enabled: got
// string, want boolean".
func schemaWarnings(doc any) []string {
	schema, err := getSchema()
	if err != nil {
		return []string{fmt.Sprintf("Advisory blueprint schema unavailable: %v", err)}
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("Advisory blueprint schema check failed: %v", err)}
	}

	var out []string
	seen := make(map[string]bool)
	collect(ve, func(loc []string, msg string) {
		w := fmt.Sprintf("%s: %s", strings.Join(loc, "."), msg)
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	})
	return out
}

func collect(ve *jsonschema.ValidationError, emit func([]string, string)) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil || len(ve.InstanceLocation) == 0 {
			return
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) > 0 && kw[len(kw)-1] == "$ref" {
			return
		}
		emit(ve.InstanceLocation, ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, emit)
	}
}
