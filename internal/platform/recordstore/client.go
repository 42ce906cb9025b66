// Package recordstore provides access to the remote tabular-record platform
// that backs the dashboard: a generic client over named record collections,
// plus a per-collection gateway that applies the field projection and the
// fail-soft error contract the entity services rely on.
package recordstore

import (
	"context"
	"encoding/json"
)

// Record is one row of a collection as returned by the platform. Numeric
// values decode as float64, which the typed accessors below normalize.
type Record map[string]any

// Fields is a partial record payload for create/update calls. Only keys
// present in the map are sent, so callers control exactly which columns a
// mutation touches.
type Fields map[string]any

// RecordResult is the per-record outcome of a batch create/update/delete.
// Batches can partially succeed; callers must inspect each result.
type RecordResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

// FetchResponse is the envelope for list queries.
type FetchResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Record `json:"data,omitempty"`
}

// GetResponse is the envelope for single-record reads.
type GetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

// BatchResponse is the envelope for create/update/delete calls.
type BatchResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Results []RecordResult `json:"results,omitempty"`
}

// Client is the generic record-platform client. Implementations must be safe
// for concurrent use.
type Client interface {
	FetchRecords(ctx context.Context, table string, q Query) (*FetchResponse, error)
	GetRecordByID(ctx context.Context, table string, id int, q Query) (*GetResponse, error)
	CreateRecords(ctx context.Context, table string, records []Fields) (*BatchResponse, error)
	// UpdateRecords expects each payload to carry the target "Id" plus only
	// the fields to change.
	UpdateRecords(ctx context.Context, table string, records []Fields) (*BatchResponse, error)
	DeleteRecords(ctx context.Context, table string, ids []int) (*BatchResponse, error)
}

// ID returns the store-assigned numeric identifier of the record.
func (r Record) ID() int { return r.Int("Id") }

// String returns the named field as a string, or "" when absent or null.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the named field as an int. JSON numbers arrive as float64.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the named field as a float64.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Decode unmarshals a record into a typed struct via its JSON tags.
func Decode(r Record, v any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// FirstSuccess splits batch results into the first successful record and the
// messages of every failed item. Batches can partially succeed, so both may
// be non-empty.
func FirstSuccess(results []RecordResult) (Record, []string) {
	var first Record
	var failures []string
	for _, r := range results {
		if r.Success {
			if first == nil {
				first = r.Data
			}
			continue
		}
		msg := r.Message
		if msg == "" {
			msg = "operation failed"
		}
		failures = append(failures, msg)
	}
	return first, failures
}
