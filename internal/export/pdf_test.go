package export

import (
	"bytes"
	"testing"
)

func TestWritePDFSmoke(t *testing.T) {
	result, req := exportFixture()

	var buf bytes.Buffer
	if err := WritePDF(&buf, result, req); err != nil {
		t.Fatalf("WritePDF error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if buf.Len() < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", buf.Len())
	}
}

func TestWritePDFWithoutOptionalSections(t *testing.T) {
	result, req := exportFixture()
	result.Validation = nil
	result.Verification.Warnings = nil
	result.Verification.Errors = nil
	result.Verification.Recommendations = nil

	var buf bytes.Buffer
	if err := WritePDF(&buf, result, req); err != nil {
		t.Fatalf("WritePDF error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestFormatHz(t *testing.T) {
	tests := []struct {
		hz   float64
		want string
	}{
		{50, "50 Hz"},
		{400, "400 Hz"},
		{20e3, "20 kHz"},
		{100e3, "100 kHz"},
		{2.5e6, "2.5 MHz"},
	}
	for _, tt := range tests {
		if got := formatHz(tt.hz); got != tt.want {
			t.Errorf("formatHz(%v) = %q, want %q", tt.hz, got, tt.want)
		}
	}
}

func TestWindingLine(t *testing.T) {
	if got := windingLine(15, 44, 427, 2); got != "15 turns, litz 427 x AWG 44, 2 layers" {
		t.Errorf("litz winding line = %q", got)
	}
	if got := windingLine(120, 26, 1, 3); got != "120 turns, AWG 26, 3 layers" {
		t.Errorf("solid winding line = %q", got)
	}
}
