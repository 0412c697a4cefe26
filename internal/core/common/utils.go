package common

import (
	"encoding/json"
	"fmt"
)

// ParseJSON cleans and unmarshals a JSON object string into a type T.
// It tolerates surrounding text such as markdown fences around the object.
func ParseJSON[T any](response string) (T, error) {
	var zero T
	jsonStr := response

	start := -1
	end := -1

	for i, c := range jsonStr {
		if c == '{' {
			start = i
			break
		}
	}
	for i := len(jsonStr) - 1; i >= 0; i-- {
		if c := jsonStr[i]; c == '}' {
			end = i + 1
			break
		}
	}

	if start != -1 && end != -1 && start < end {
		jsonStr = jsonStr[start:end]
	} else if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}

// ParseJSONList extracts and unmarshals a JSON array of strings from a
// response that may carry extra text around the array.
func ParseJSONList(response string) ([]string, error) {
	start := -1
	for i, c := range response {
		if c == '[' {
			start = i
			break
		}
	}
	end := -1
	for i := len(response) - 1; i >= 0; i-- {
		if response[i] == ']' {
			end = i
			break
		}
	}

	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var items []string
	if err := json.Unmarshal([]byte(response[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON array: %w", err)
	}

	return items, nil
}
