package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data := Dataset{
		Headers: []string{"ID", "Name", "Note"},
		Rows: []map[string]string{
			{"ID": "1", "Name": "Ada", "Note": "says \"hi\", twice"},
			{"ID": "2", "Name": "José"},
		},
	}

	raw, err := exporter.Render(data)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Name", "Note"}, records[0])
	assert.Equal(t, `says "hi", twice`, records[1][2])
	// missing cell renders empty, not skipped
	assert.Equal(t, []string{"2", "José", ""}, records[2])
}

func TestCSVExporterHeaderOnly(t *testing.T) {
	exporter := NewCSVExporter()

	raw, err := exporter.Render(Dataset{Headers: []string{"ID"}})
	require.NoError(t, err)
	assert.Equal(t, "ID\n", string(raw[3:]))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}
