package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/harmony/internal/model"
)

// Parse errors.
var (
	ErrNoArray     = errors.New("no JSON array in response")
	ErrInvalidItem = errors.New("invalid content item")
)

// ExtractArray returns the first balanced [...] substring of text. Brackets
// inside JSON strings are ignored.
func ExtractArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	for start >= 0 {
		if end, ok := matchBracket(text, start); ok {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBracket(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// ParseItems extracts and validates a list of items from a model response.
// Every element must be an object carrying each field as a non-empty string;
// extra keys are dropped. An empty list is rejected.
func ParseItems(text string, fields []string) ([]model.Item, error) {
	raw, ok := ExtractArray(text)
	if !ok {
		return nil, ErrNoArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArray, err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidItem)
	}

	items := make([]model.Item, 0, len(elements))
	for i, el := range elements {
		var obj map[string]any
		if err := json.Unmarshal(el, &obj); err != nil || obj == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidItem, i)
		}
		item, err := validateItem(obj, fields)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func validateItem(obj map[string]any, fields []string) (model.Item, error) {
	item := make(model.Item, len(fields))
	for _, f := range fields {
		v, ok := obj[f]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidItem, f)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a string", ErrInvalidItem, f)
		}
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: %q is empty", ErrInvalidItem, f)
		}
		item[f] = strings.TrimSpace(s)
	}
	return item, nil
}

// validItems reports whether cached items still satisfy the kind's schema.
func validItems(items []model.Item, fields []string) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		for _, f := range fields {
			if strings.TrimSpace(item[f]) == "" {
				return false
			}
		}
	}
	return true
}

func copyItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		c := make(model.Item, len(item))
		for k, v := range item {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
