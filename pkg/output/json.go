// Package output renders command results as coloured text, JSON or YAML.
// Results always go to the writer handed in by the command, never straight
// to os.Stdout, so tests and pipes see the same bytes.
package output

import (
	"encoding/json"
	"io"
)

// JSONTo writes any data structure as formatted JSON to the specified writer.
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
