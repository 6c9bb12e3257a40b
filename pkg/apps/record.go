package apps

import (
	"encoding/json"
	"strconv"
)

// Record is one flat upstream entry keyed by its OData property names.
type Record map[string]string

// Get returns the value of key, or "" when absent.
func (r Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// First returns the first non-empty value among keys.
func (r Record) First(keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// NewRecord flattens a decoded JSON object into a Record.
// Strings, numbers and booleans are kept in their textual form; null values
// and nested objects or arrays are dropped.
func NewRecord(raw map[string]any) Record {
	if raw == nil {
		return nil
	}
	rec := make(Record, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			rec[k] = val
		case json.Number:
			rec[k] = val.String()
		case float64:
			rec[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			rec[k] = strconv.FormatBool(val)
		}
	}
	return rec
}

// NewRecords flattens a list of decoded JSON objects.
func NewRecords(raw []map[string]any) []Record {
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, NewRecord(r))
	}
	return out
}

// SemanticAction is a navigation target projected from the intents facet.
type SemanticAction struct {
	SemanticObject string `json:"SemanticObject" yaml:"SemanticObject"`
	SemanticAction string `json:"SemanticAction" yaml:"SemanticAction"`
}

// Complete reports whether both parts of the pair are present.
func (a SemanticAction) Complete() bool {
	return a.SemanticObject != "" && a.SemanticAction != ""
}

// String renders the pair as "object:action".
func (a SemanticAction) String() string {
	return a.SemanticObject + ":" + a.SemanticAction
}

// ProjectSemanticActions keeps only the object and action of each intent record.
func ProjectSemanticActions(records []Record) []SemanticAction {
	out := make([]SemanticAction, 0, len(records))
	for _, r := range records {
		out = append(out, SemanticAction{
			SemanticObject: r.Get("SemanticObject"),
			SemanticAction: r.Get("SemanticAction"),
		})
	}
	return out
}
