package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSXRoundTrip(t *testing.T) {
	result, req := exportFixture()

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, result, req); err != nil {
		t.Fatalf("WriteXLSX error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	wantSheets := []string{"Requirements", "Core", "Winding", "Losses", "Validation"}
	sheets := f.GetSheetList()
	if len(sheets) != len(wantSheets) {
		t.Fatalf("got sheets %v, want %v", sheets, wantSheets)
	}
	for i, want := range wantSheets {
		if sheets[i] != want {
			t.Errorf("sheet %d = %s, want %s", i, sheets[i], want)
		}
	}

	tests := []struct {
		sheet string
		cell  string
		want  string
	}{
		{"Requirements", "A1", "Parameter"},
		{"Requirements", "A2", "Output power"},
		{"Requirements", "B2", "200"},
		{"Requirements", "C2", "W"},
		{"Core", "B4", "ETD29/16/10"},
		{"Winding", "B2", "0.2667"},
		{"Losses", "B15", "TRUE"},
		{"Validation", "A2", "primary_turns"},
		{"Validation", "E2", "warning"},
		{"Validation", "A4", "Overall"},
		{"Validation", "E4", "pass"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(tt.sheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s) error: %v", tt.sheet, tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", tt.sheet, tt.cell, got, tt.want)
		}
	}
}

func TestWriteXLSXWithoutValidation(t *testing.T) {
	result, req := exportFixture()
	result.Validation = nil

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, result, req); err != nil {
		t.Fatalf("WriteXLSX error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Validation", "A2")
	if err != nil {
		t.Fatalf("GetCellValue error: %v", err)
	}
	if got != "No cross-validation attached" {
		t.Errorf("Validation!A2 = %q, want placeholder note", got)
	}
}
