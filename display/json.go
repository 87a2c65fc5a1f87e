package display

import (
	"encoding/json"
)

// MarshalJSON marshals a value as indented JSON suitable for both
// terminal inspection and machine consumption.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// MarshalJSONCompact marshals a value without indentation, for single-line
// pipelines (e.g. feeding jq or log collectors).
func MarshalJSONCompact(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
