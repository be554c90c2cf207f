package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{Headers: []string{"title", "country"}}
	data.Append("Fulbright", "USA")
	data.Append("Erasmus, Mundus", "Europe")

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "title,country", lines[0])
	assert.Equal(t, "Fulbright,USA", lines[1])
	assert.Equal(t, `"Erasmus, Mundus",Europe`, lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{Title: "Scholarships", Headers: []string{"id", "slug", "title", "amount", "deadline", "country"}}
	data.Append("1", "fulbright", strings.Repeat("Very long scholarship title ", 10), "Full", "2025-01-01", "USA")

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRendererMetadata(t *testing.T) {
	var r Renderer = NewPDFExporter()
	assert.Equal(t, "pdf", r.Extension())
	r = NewCSVExporter()
	assert.Equal(t, "text/csv", r.ContentType())
}
