package render

import (
	"bytes"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestWritePDFOnePagePerBand(t *testing.T) {
	capture := gradientImage(794, 950*2)
	bands := PaginateCapture(capture)
	if len(bands) < 2 {
		t.Fatalf("expected a multi-page capture, got %d bands", len(bands))
	}

	var buf bytes.Buffer
	if err := WritePDF(bands, &buf); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen pdf: %v", err)
	}
	if got := reader.NumPage(); got != len(bands) {
		t.Fatalf("pdf has %d pages, want %d", got, len(bands))
	}
}

func TestWritePDFShortLastBand(t *testing.T) {
	capture := gradientImage(794, PageHeightFor(794)+200)
	bands := PaginateCapture(capture)
	if len(bands) != 2 {
		t.Fatalf("bands = %d, want 2", len(bands))
	}

	var buf bytes.Buffer
	if err := WritePDF(bands, &buf); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen pdf: %v", err)
	}
	if got := reader.NumPage(); got != 2 {
		t.Fatalf("pdf has %d pages, want 2", got)
	}
}

func TestWritePDFRejectsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(nil, &buf); err == nil {
		t.Fatalf("expected error for empty band list")
	}
	if buf.Len() != 0 {
		t.Fatalf("no output should be written on error")
	}
}
