package blueprint

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// KV is one flattened leaf.
type KV struct {
	Key   string
	Value string
}

// Flatten returns every leaf of the document as a dot-separated key path,
// sorted by key. Arrays are leaves whose elements are joined with ",";
// null becomes "".
func Flatten(b *Blueprint) []KV {
	var out []KV
	flatten(b.root(), "", &out)
	return out
}

// Values returns Flatten as a lookup map.
func Values(b *Blueprint) map[string]string {
	kvs := Flatten(b)
	m := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func flatten(m map[string]any, prefix string, out *[]KV) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := m[k].(map[string]any); ok {
			flatten(child, key, out)
			continue
		}
		*out = append(*out, KV{Key: key, Value: scalar(m[k])})
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = scalar(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
