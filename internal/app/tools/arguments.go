package tools

import (
	"bytes"
	"fmt"
)

// ParseArguments decodes a raw arguments document. An empty body or JSON null
// is an empty object; anything other than an object is rejected.
func ParseArguments(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("arguments must be a JSON object")
	}
	var args map[string]any
	if err := json.Unmarshal(trimmed, &args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
