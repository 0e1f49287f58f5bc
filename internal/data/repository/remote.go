package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"pitch-booking/pkg/apiclient"
)

// decodeList reads either a bare JSON array or an object carrying the array under key,
// e.g. [...] or {"reservations": [...]}.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode %s list: %v: %w", key, err, apiclient.ErrInvalidResponse)
		}
		return out, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s list: %v: %w", key, err, apiclient.ErrInvalidResponse)
	}

	for _, k := range []string{key, "data"} {
		if inner, ok := wrapped[k]; ok {
			return decodeList[T](inner, key)
		}
	}

	return nil, fmt.Errorf("decode %s list: missing %q: %w", key, key, apiclient.ErrInvalidResponse)
}
