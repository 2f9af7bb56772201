// Package export renders finished transformer designs into interchange
// artifacts: MAS JSON for the OpenMagnetics toolchain, FEMM Lua scripts for
// 2D FEA, and PDF or XLSX datasheets for review and archival. Every exporter
// streams to an io.Writer; the package never touches the filesystem.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Denys/transformer-designer/internal/design"
)

// Export formats.
const (
	FormatMAS  = "mas"
	FormatFEMM = "femm"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// Tool identification stamped into generated artifacts.
const (
	toolName    = "TransformerDesigner"
	toolVersion = "1.0.0"
)

// Format describes one supported export format for discovery endpoints.
type Format struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	MediaType   string `json:"media_type"`
	Description string `json:"description"`
}

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{
		{
			ID:          FormatMAS,
			Name:        "MAS (Magnetic Agnostic Structure)",
			Extension:   ".mas.json",
			MediaType:   "application/json",
			Description: "OpenMagnetics JSON format for FEA tools",
		},
		{
			ID:          FormatFEMM,
			Name:        "FEMM Lua Script",
			Extension:   ".lua",
			MediaType:   "text/x-lua",
			Description: "Script for FEMM 2D magnetic simulation",
		},
		{
			ID:          FormatPDF,
			Name:        "PDF Datasheet",
			Extension:   ".pdf",
			MediaType:   "application/pdf",
			Description: "Printable design report",
		},
		{
			ID:          FormatXLSX,
			Name:        "Excel Workbook",
			Extension:   ".xlsx",
			MediaType:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Description: "Spreadsheet with requirements, core, winding, and loss tables",
		},
	}
}

// Request is the export envelope: a finished transformer design together
// with the requirements it was designed from. The requirements ride along
// because the MAS inputs section and the FEMM problem definition need the
// operating conditions, not just the result.
type Request struct {
	DesignResult *design.TransformerResult      `json:"design_result"`
	Requirements design.TransformerRequirements `json:"requirements"`
}

// Write renders the design in the named format.
func Write(format string, w io.Writer, result *design.TransformerResult, req design.TransformerRequirements) error {
	switch format {
	case FormatMAS:
		return WriteMAS(w, result, req)
	case FormatFEMM:
		return WriteFEMM(w, result, req)
	case FormatPDF:
		return WritePDF(w, result, req)
	case FormatXLSX:
		return WriteXLSX(w, result, req)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// MediaType returns the Content-Type for a format, or empty when the format
// is unknown.
func MediaType(format string) string {
	for _, f := range Formats() {
		if f.ID == format {
			return f.MediaType
		}
	}
	return ""
}

// Filename builds the suggested attachment filename for an artifact. Slashes
// in part numbers (ETD29/16/10) become dashes so the name stays a single
// path component.
func Filename(format, corePartNumber string, outputPowerW float64) string {
	ext := ""
	for _, f := range Formats() {
		if f.ID == format {
			ext = f.Extension
		}
	}
	core := strings.ReplaceAll(corePartNumber, "/", "-")
	if core == "" {
		core = "unknown"
	}
	return fmt.Sprintf("transformer_%s_%dW%s", core, int(outputPowerW), ext)
}
