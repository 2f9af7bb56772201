package export

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Denys/transformer-designer/internal/design"
)

// WritePDF renders a printable single-page design datasheet.
func WritePDF(w io.Writer, result *design.TransformerResult, req design.TransformerRequirements) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Transformer Design Datasheet")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Core: %s   Output: %.1f W   Date: %s",
		result.Core.PartNumber, req.OutputPowerW, time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdfSection(pdf, "Requirements")
	pdfRow(pdf, "Output power", fmt.Sprintf("%.1f W", req.OutputPowerW))
	pdfRow(pdf, "Primary voltage", fmt.Sprintf("%.1f V", req.PrimaryVoltageV))
	pdfRow(pdf, "Secondary voltage", fmt.Sprintf("%.1f V", req.SecondaryVoltageV))
	pdfRow(pdf, "Frequency", formatHz(req.FrequencyHz))
	pdfRow(pdf, "Waveform", fmt.Sprintf("%s (duty %.2f)", req.Waveform, req.DutyCycle))
	pdfRow(pdf, "Target efficiency", fmt.Sprintf("%.1f %%", req.EfficiencyPct))
	pdfRow(pdf, "Ambient / max rise", fmt.Sprintf("%.0f C / %.0f C", req.AmbientTempC, req.MaxTempRiseC))
	pdfRow(pdf, "Cooling", req.Cooling)
	pdf.Ln(4)

	pdfSection(pdf, "Core")
	pdfRow(pdf, "Part number", result.Core.PartNumber)
	pdfRow(pdf, "Manufacturer", result.Core.Manufacturer)
	pdfRow(pdf, "Geometry / material", fmt.Sprintf("%s / %s", result.Core.Geometry, result.Core.Material))
	pdfRow(pdf, "Effective area Ae", fmt.Sprintf("%.3f cm2", result.Core.AeCM2))
	pdfRow(pdf, "Window area Wa", fmt.Sprintf("%.3f cm2", result.Core.WaCM2))
	pdfRow(pdf, "Area product Ap", fmt.Sprintf("%.3f cm4", result.Core.ApCM4))
	pdfRow(pdf, "Core volume Ve", fmt.Sprintf("%.2f cm3", result.Core.VeCM3))
	pdfRow(pdf, "Saturation flux Bsat", fmt.Sprintf("%.2f T", result.Core.BsatT))
	pdfRow(pdf, "Catalog source", result.Core.Source)
	pdf.Ln(4)

	pdfSection(pdf, "Winding")
	pdfRow(pdf, "Design method", fmt.Sprintf("%s (%s)", result.DesignMethod, result.DesignMethodName))
	pdfRow(pdf, "Turns ratio", fmt.Sprintf("%.4f", result.TurnsRatio))
	pdfRow(pdf, "Primary", windingLine(result.Winding.PrimaryTurns, result.Winding.PrimaryWireAWG,
		result.Winding.PrimaryStrands, result.Winding.PrimaryLayers))
	pdfRow(pdf, "Primary Rdc / Rac-Rdc", fmt.Sprintf("%.2f mOhm / %.3f",
		result.Winding.PrimaryRdcMOhm, result.Winding.PrimaryRacRdc))
	pdfRow(pdf, "Secondary", windingLine(result.Winding.SecondaryTurns, result.Winding.SecondaryWireAWG,
		result.Winding.SecondaryStrands, result.Winding.SecondaryLayers))
	pdfRow(pdf, "Secondary Rdc / Rac-Rdc", fmt.Sprintf("%.2f mOhm / %.3f",
		result.Winding.SecondaryRdcMOhm, result.Winding.SecondaryRacRdc))
	pdfRow(pdf, "Window utilization Ku", fmt.Sprintf("%.3f (%s)", result.Winding.TotalKu, result.Winding.KuStatus))
	pdf.Ln(4)

	pdfSection(pdf, "Losses and Thermal")
	pdfRow(pdf, "Core loss", fmt.Sprintf("%.3f W (%.1f mW/cm3)",
		result.Losses.CoreLossW, result.Losses.CoreLossDensityMWCm3))
	pdfRow(pdf, "Copper loss", fmt.Sprintf("%.3f W primary, %.3f W secondary",
		result.Losses.PrimaryCopperLossW, result.Losses.SecondaryCopperLossW))
	pdfRow(pdf, "Total loss", fmt.Sprintf("%.3f W", result.Losses.TotalLossW))
	pdfRow(pdf, "Efficiency", fmt.Sprintf("%.2f %%", result.Losses.EfficiencyPct))
	pdfRow(pdf, "Temperature rise", fmt.Sprintf("%.1f C", result.Thermal.TemperatureRiseC))
	pdfRow(pdf, "Hotspot", fmt.Sprintf("%.1f C (%s)", result.Thermal.HotspotTempC, result.Thermal.ThermalStatus))
	pdf.Cell(70, 6, "Cooling recommendation")
	pdf.MultiCell(0, 6, result.Thermal.CoolingRecommendation, "", "L", false)
	pdf.Ln(4)

	pdfSection(pdf, "Verification")
	pdfRow(pdf, "Electrical / mechanical / thermal", fmt.Sprintf("%s / %s / %s",
		result.Verification.Electrical, result.Verification.Mechanical, result.Verification.Thermal))
	pdfRow(pdf, "Design viable", yesNo(result.DesignViable))
	pdfRow(pdf, "Confidence score", fmt.Sprintf("%.2f", result.ConfidenceScore))
	if result.Validation != nil {
		pdfRow(pdf, "Cross-validation", result.Validation.Summary)
	}
	pdfList(pdf, "Warnings", result.Verification.Warnings)
	pdfList(pdf, "Errors", result.Verification.Errors)
	pdfList(pdf, "Recommendations", result.Verification.Recommendations)

	return pdf.Output(w)
}

func pdfSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func pdfRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(70, 6, label)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

func pdfList(pdf *gofpdf.Fpdf, title string, items []string) {
	if len(items) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, title+":")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
}

func windingLine(turns, awg, strands, layers int) string {
	if strands > 1 {
		return fmt.Sprintf("%d turns, litz %d x AWG %d, %d layers", turns, strands, awg, layers)
	}
	return fmt.Sprintf("%d turns, AWG %d, %d layers", turns, awg, layers)
}

func formatHz(hz float64) string {
	switch {
	case hz >= 1e6:
		return fmt.Sprintf("%.4g MHz", hz/1e6)
	case hz >= 1e3:
		return fmt.Sprintf("%.4g kHz", hz/1e3)
	}
	return fmt.Sprintf("%.4g Hz", hz)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
