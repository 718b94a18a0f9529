package extract

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// readPDF extracts the plain text of every page. Layout, fonts and
// images are not recoverable from the symbol stream, so only the text
// survives a compression round-trip.
func readPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	text, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return "", err
	}
	return buf.String(), nil
}
