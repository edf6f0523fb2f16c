// internal/report/json.go
package report

import (
	"encoding/json"
	"io"
)

func init() { Register("json", WriteJSON) }

// WriteJSON writes the report as a single indented JSON document.
func WriteJSON(w io.Writer, s Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
