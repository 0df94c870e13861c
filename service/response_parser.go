package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

const codeFence = "```"

// parseActionItemTexts reads a model reply as a JSON array of task strings.
//
// The reply is first decoded as-is. If that fails, the first fenced code block
// (optionally tagged json) is decoded instead. Elements that are not strings, or
// that are blank after trimming, are dropped; order is preserved.
func parseActionItemTexts(reply string) ([]string, error) {
	reply = strings.TrimSpace(reply)

	elems, err := decodeJSONArray(reply)
	if err != nil {
		block, ok := extractFencedBlock(reply)
		if !ok {
			return nil, err
		}
		elems, err = decodeJSONArray(block)
		if err != nil {
			return nil, fmt.Errorf("fenced block: %w", err)
		}
	}

	texts := make([]string, 0, len(elems))
	for _, elem := range elems {
		s, ok := elem.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			texts = append(texts, s)
		}
	}
	return texts, nil
}

// decodeJSONArray accepts only a top-level JSON array.
func decodeJSONArray(s string) ([]interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("reply is JSON but not an array (got %T)", v)
	}
	return arr, nil
}

// extractFencedBlock returns the content of the first ``` block in s.
// A "json" tag right after the opening fence is skipped. An unclosed fence
// yields everything after the opening marker.
func extractFencedBlock(s string) (string, bool) {
	start := strings.Index(s, codeFence)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(codeFence):]
	if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
		rest = rest[4:]
	}
	if end := strings.Index(rest, codeFence); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}
