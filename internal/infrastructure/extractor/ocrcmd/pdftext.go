package ocrcmd

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfTextLayer tries the PDF's embedded text layer. Scanned documents have
// none, in which case the caller falls through to the OCR process. The pdf
// reader panics on some malformed files, so the whole attempt is guarded.
func pdfTextLayer(path string) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("pdf_text_layer_panic", "path", path, "panic", r)
			text, ok = "", false
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", false
	}

	text = strings.TrimSpace(buf.String())
	return text, text != ""
}
