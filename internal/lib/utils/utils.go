// Package utils contains small helper functions used across the project.
package utils

import (
	"encoding/json"
	"io"
)

// WriteJSON encodes v to w followed by a newline, the same encoding Echo
// uses for HTTP responses. With pretty set the output is tab indented.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "\t")
	}
	return enc.Encode(v)
}
