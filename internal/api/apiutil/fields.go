// internal/api/apiutil/fields.go
package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// PathID parses the {id} path segment of a routed request.
func PathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// ParseIDList parses form values into entity ids. Values may repeat (one
// per checkbox) or arrive comma-separated from a single field.
func ParseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// QueryInt64 parses an optional integer query parameter, returning nil when
// absent and an error when present but malformed.
func QueryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &value, nil
}
