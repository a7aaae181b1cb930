package strategy

import "encoding/json"

// payloadShape discriminates the historical backend response shapes.
// Detection order matters and mirrors the precedence the dashboard has
// always applied: an encoded string is parsed first, then wrappers are
// peeled outermost-first, and whatever remains is taken as canonical.
type payloadShape int

const (
	shapeCanonical payloadShape = iota
	shapeEncodedString
	shapeStrategyWrapped
	shapeDataWrapped
	shapeFinalOutputWrapped
	shapeOpaque
)

// maxUnwrapDepth bounds recursive unwrapping. Legitimate payloads nest two
// or three levels at most; anything deeper is malformed.
const maxUnwrapDepth = 5

// Normalize collapses a raw strategy payload into a canonical Record.
// It returns nil when the payload cannot be resolved to a record: a string
// that is not valid JSON, a value that is neither object nor string, or a
// wrapper nest exceeding the depth bound.
func Normalize(payload any) Record {
	return normalize(payload, 0)
}

// NormalizeJSON decodes raw JSON and normalizes the result.
func NormalizeJSON(data []byte) Record {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return Normalize(payload)
}

func normalize(payload any, depth int) Record {
	if depth > maxUnwrapDepth {
		return nil
	}

	switch detectShape(payload) {
	case shapeEncodedString:
		var parsed any
		if err := json.Unmarshal([]byte(payload.(string)), &parsed); err != nil {
			return nil
		}
		return normalize(parsed, depth+1)

	case shapeStrategyWrapped:
		return normalize(asMap(payload)["strategy"], depth+1)

	case shapeDataWrapped:
		return normalize(asMap(payload)["data"], depth+1)

	case shapeFinalOutputWrapped:
		return normalize(asMap(payload)["final_output"], depth+1)

	case shapeCanonical:
		// As-is, even if empty. Valid() is the caller's gate.
		return Record(asMap(payload))

	default:
		return nil
	}
}

func detectShape(payload any) payloadShape {
	if _, ok := payload.(string); ok {
		return shapeEncodedString
	}

	m := asMap(payload)
	if m == nil {
		return shapeOpaque
	}

	if _, ok := m["strategy"].(map[string]any); ok {
		return shapeStrategyWrapped
	}
	if _, ok := m["data"].(map[string]any); ok {
		return shapeDataWrapped
	}
	switch out := m["final_output"].(type) {
	case string:
		if out != "" {
			return shapeFinalOutputWrapped
		}
	case map[string]any:
		return shapeFinalOutputWrapped
	}

	return shapeCanonical
}

func asMap(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		return v
	case Record:
		return map[string]any(v)
	default:
		return nil
	}
}
