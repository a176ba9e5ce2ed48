package verify

import (
	"encoding/json"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// estimateToolTokens approximates the context tokens a tool definition
// consumes when handed to a model: name plus description plus the
// normalized input schema, at roughly four characters per token.
func estimateToolTokens(tool mcpgo.Tool) int {
	chars := len(tool.Name) + len(tool.Description)
	if schema := normalizeSchema(tool.InputSchema); schema != nil {
		chars += len(schema)
	}
	return (chars + 3) / 4
}

// normalizeSchema renders a tool input schema the way assistants serialize
// it before sending to the model: object schemas get explicit type,
// properties, required, and additionalProperties fields even when the
// server omitted them. Returns nil when the schema cannot be rendered.
func normalizeSchema(schema mcpgo.ToolInputSchema) []byte {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}

	typ, hasType := m["type"].(string)
	if !hasType || typ == "object" {
		if !hasType {
			m["type"] = "object"
		}
		if _, ok := m["properties"]; !ok {
			m["properties"] = map[string]any{}
		}
		if _, ok := m["required"]; !ok {
			m["required"] = []any{}
		}
		if _, ok := m["additionalProperties"]; !ok {
			m["additionalProperties"] = false
		}
	}

	normalized, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return normalized
}
