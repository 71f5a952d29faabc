// Package ocrcmd extracts text by invoking an external OCR process with
// the stored file path as its sole argument.
package ocrcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/essaylab/essaylab-backend/internal/core/domain"
)

type Extractor struct {
	command      string
	pdfTextLayer bool
}

type Options struct {
	// PDFTextLayer enables reading a PDF's embedded text layer first and
	// only spawning the OCR process when the layer is empty.
	PDFTextLayer bool
}

func New(command string, options Options) *Extractor {
	return &Extractor{
		command:      command,
		pdfTextLayer: options.PDFTextLayer,
	}
}

// ocrOutput is the structured result the OCR process prints on stdout.
type ocrOutput struct {
	Text       string   `json:"text"`
	Weaknesses []string `json:"weaknesses"`
	Error      string   `json:"error"`
}

func (e *Extractor) Extract(ctx context.Context, path string) (domain.Extraction, error) {
	if e.pdfTextLayer && strings.HasSuffix(strings.ToLower(path), ".pdf") {
		if text, ok := pdfTextLayer(path); ok {
			return domain.Extraction{Text: text, Weaknesses: []string{}}, nil
		}
	}
	return e.runProcess(ctx, path)
}

// runProcess spawns the OCR command, keeping its stdout as the result
// payload and its stderr as diagnostics. Stderr is logged, never surfaced.
func (e *Extractor) runProcess(ctx context.Context, path string) (domain.Extraction, error) {
	cmd := exec.CommandContext(ctx, e.command, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		slog.Info("ocr_process_stderr", "path", path, "stderr", diag)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Extraction{}, domain.WrapError(domain.ErrProcess, "run ocr process", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.Extraction{}, domain.WrapError(domain.ErrProcess, "run ocr process",
				fmt.Errorf("exit code %d", exitErr.ExitCode()))
		}
		return domain.Extraction{}, domain.WrapError(domain.ErrProcess, "run ocr process", err)
	}

	var output ocrOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrParse, "parse ocr output", err)
	}
	if output.Error != "" {
		return domain.Extraction{}, domain.WrapError(domain.ErrUpstream, "ocr result", errors.New(output.Error))
	}
	if strings.TrimSpace(output.Text) == "" {
		return domain.Extraction{}, domain.WrapError(domain.ErrEmptyExtraction, "ocr result",
			errors.New("process produced no text"))
	}

	if output.Weaknesses == nil {
		output.Weaknesses = []string{}
	}
	return domain.Extraction{
		Text:       output.Text,
		Weaknesses: output.Weaknesses,
	}, nil
}
