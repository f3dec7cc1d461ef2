package semp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Envelope is the generic SEMP response wrapper. Only Data is consumed.
type Envelope[T any] struct {
	Data T               `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// decodeEnvelope unwraps body into T. A missing or null data member is an error.
func decodeEnvelope[T any](body []byte) (T, error) {
	var zero T
	if !gjson.ValidBytes(body) {
		return zero, fmt.Errorf("failed to decode response: malformed JSON")
	}
	if data := gjson.GetBytes(body, "data"); !data.Exists() || data.Type == gjson.Null {
		return zero, ErrMissingData
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	return env.Data, nil
}

// metaDetail extracts a human readable reason from the meta block of an error
// response, e.g. "NOT_FOUND: Could not find match for queue". Bodies without a
// meta.error block yield "".
func metaDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	meta := gjson.GetManyBytes(body, "meta.error.status", "meta.error.description")
	parts := make([]string, 0, 2)
	for _, r := range meta {
		if s := strings.TrimSpace(r.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ": ")
}

// nextPageURI returns meta.paging.nextPageUri, set by the broker when a list
// was truncated at the requested count.
func nextPageURI(body []byte) string {
	return gjson.GetBytes(body, "meta.paging.nextPageUri").String()
}
