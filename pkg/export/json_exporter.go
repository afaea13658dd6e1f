package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONExporter renders a Dataset as an ordered array of field→value objects.
// Field order inside each object follows Dataset.Headers, and non-ASCII
// characters are emitted literally rather than escaped.
type JSONExporter struct{}

// NewJSONExporter builds a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Render produces pretty-printed JSON with two-space indentation. An empty
// row set yields a well-formed empty array.
func (e *JSONExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("json requires at least one header")
	}
	buf := &bytes.Buffer{}
	if len(data.Rows) == 0 {
		buf.WriteString("[]\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("[\n")
	for i, row := range data.Rows {
		buf.WriteString("  {\n")
		for j, header := range data.Headers {
			key, err := encodeJSONString(header)
			if err != nil {
				return nil, err
			}
			value, err := encodeJSONString(row[header])
			if err != nil {
				return nil, err
			}
			buf.WriteString("    ")
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(value)
			if j < len(data.Headers)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("  }")
		if i < len(data.Rows)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

// encodeJSONString marshals one string without HTML escaping, so characters
// outside ASCII survive literally.
func encodeJSONString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode json string: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
