package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParse is returned when model output is not a JSON object.
var ErrParse = errors.New("structured output did not parse")

// ParseStructured decodes a model reply as a JSON object. Code fences and
// prose around the object are ignored: the outermost {...} is decoded.
func ParseStructured(text string) (map[string]any, error) {
	raw := strings.TrimSpace(text)
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrParse)
	}
	return out, nil
}
