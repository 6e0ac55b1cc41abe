package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLTo writes data as a YAML document with two-space indentation.
func YAMLTo(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}
