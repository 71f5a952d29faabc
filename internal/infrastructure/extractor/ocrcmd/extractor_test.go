package ocrcmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

// fakeOCR writes a shell script that plays the OCR process and returns its
// path. The script ignores the file argument and prints the given stdout.
func fakeOCR(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-ocr")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExtractParsesProcessOutput(t *testing.T) {
	command := fakeOCR(t, `echo '{"text":"Recovered essay text.","weaknesses":["spelling"]}'`)
	extractor := New(command, Options{})

	extraction, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Text != "Recovered essay text." {
		t.Errorf("text = %q", extraction.Text)
	}
	if len(extraction.Weaknesses) != 1 || extraction.Weaknesses[0] != "spelling" {
		t.Errorf("weaknesses = %v", extraction.Weaknesses)
	}
}

func TestExtractNilWeaknessesBecomeEmpty(t *testing.T) {
	command := fakeOCR(t, `echo '{"text":"Some text."}'`)
	extractor := New(command, Options{})

	extraction, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Weaknesses == nil {
		t.Error("weaknesses is nil, want empty slice")
	}
}

func TestExtractNonZeroExitIsProcessError(t *testing.T) {
	command := fakeOCR(t, `echo "boom" >&2; exit 3`)
	extractor := New(command, Options{})

	_, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrProcess) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
}

func TestExtractMissingCommandIsProcessError(t *testing.T) {
	extractor := New(filepath.Join(t.TempDir(), "no-such-binary"), Options{})

	_, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrProcess) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
}

func TestExtractMalformedStdoutIsParseError(t *testing.T) {
	command := fakeOCR(t, `echo 'Traceback (most recent call last):'`)
	extractor := New(command, Options{})

	_, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestExtractReportedErrorIsUpstream(t *testing.T) {
	command := fakeOCR(t, `echo '{"error":"unreadable image"}'`)
	extractor := New(command, Options{})

	_, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestExtractBlankTextIsEmptyExtraction(t *testing.T) {
	command := fakeOCR(t, `echo '{"text":"   "}'`)
	extractor := New(command, Options{})

	_, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrEmptyExtraction) {
		t.Fatalf("expected ErrEmptyExtraction, got %v", err)
	}
}

func TestExtractCanceledContextIsProcessError(t *testing.T) {
	command := fakeOCR(t, `sleep 10; echo '{"text":"late"}'`)
	extractor := New(command, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, "/tmp/scan.png")
	if !domain.IsKind(err, domain.ErrProcess) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
}

func TestExtractFallsBackToProcessForNonPDF(t *testing.T) {
	command := fakeOCR(t, `echo '{"text":"From process."}'`)
	extractor := New(command, Options{PDFTextLayer: true})

	extraction, err := extractor.Extract(context.Background(), "/tmp/scan.png")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Text != "From process." {
		t.Errorf("text = %q", extraction.Text)
	}
}

func TestExtractUnreadablePDFFallsBackToProcess(t *testing.T) {
	command := fakeOCR(t, `echo '{"text":"OCR rescue."}'`)
	extractor := New(command, Options{PDFTextLayer: true})

	// Not a real PDF; the text-layer read fails and the process runs.
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	extraction, err := extractor.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if extraction.Text != "OCR rescue." {
		t.Errorf("text = %q", extraction.Text)
	}
}
