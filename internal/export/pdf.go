package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFExporter renders the report data line by line into an A4 document.
type PDFExporter struct{}

func (PDFExporter) Name() string { return "pdf" }

func (PDFExporter) Export(data string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	for _, line := range strings.Split(data, "\n") {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
