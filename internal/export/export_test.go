package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, []string{"html", "pdf", "xlsx"}, Default().Names())
}

func TestRegistry_Get(t *testing.T) {
	registry := Default()

	e, ok := registry.Get("pdf")
	require.True(t, ok)
	assert.Equal(t, "pdf", e.Name())

	_, ok = registry.Get("docx")
	assert.False(t, ok)
}

func TestHTMLExporter_PassesThrough(t *testing.T) {
	out, err := HTMLExporter{}.Export("<html><body>report</body></html>")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>report</body></html>", string(out))
}

func TestPDFExporter(t *testing.T) {
	out, err := PDFExporter{}.Export("line one\nline two")
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestXLSXExporter(t *testing.T) {
	out, err := XLSXExporter{}.Export("line one\nline two")
	require.NoError(t, err)
	// xlsx files are zip archives.
	require.Greater(t, len(out), 2)
	assert.Equal(t, "PK", string(out[:2]))

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	first, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	second, err := f.GetCellValue("Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "line one", first)
	assert.Equal(t, "line two", second)
}
