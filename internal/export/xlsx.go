package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Denys/transformer-designer/internal/design"
)

// xlsxRow is one Parameter / Value / Unit line of a workbook sheet.
type xlsxRow struct {
	name  string
	value interface{}
	unit  string
}

// WriteXLSX renders the design as a spreadsheet workbook with one sheet per
// design aspect.
func WriteXLSX(w io.Writer, result *design.TransformerResult, req design.TransformerRequirements) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Requirements"); err != nil {
		return err
	}
	for _, sheet := range []string{"Core", "Winding", "Losses", "Validation"} {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := xlsxFill(f, "Requirements", header, xlsxRequirementRows(req)); err != nil {
		return err
	}
	if err := xlsxFill(f, "Core", header, xlsxCoreRows(result)); err != nil {
		return err
	}
	if err := xlsxFill(f, "Winding", header, xlsxWindingRows(result)); err != nil {
		return err
	}
	if err := xlsxFill(f, "Losses", header, xlsxLossRows(result)); err != nil {
		return err
	}
	if err := xlsxValidation(f, header, result); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func xlsxRequirementRows(req design.TransformerRequirements) []xlsxRow {
	return []xlsxRow{
		{"Output power", req.OutputPowerW, "W"},
		{"Target efficiency", req.EfficiencyPct, "%"},
		{"Regulation", req.RegulationPct, "%"},
		{"Primary voltage", req.PrimaryVoltageV, "V"},
		{"Secondary voltage", req.SecondaryVoltageV, "V"},
		{"Frequency", req.FrequencyHz, "Hz"},
		{"Waveform", req.Waveform, ""},
		{"Duty cycle", req.DutyCycle, ""},
		{"Ambient temperature", req.AmbientTempC, "C"},
		{"Max temperature rise", req.MaxTempRiseC, "C"},
		{"Cooling", req.Cooling, ""},
		{"Transformer type", req.TransformerType, ""},
		{"Max current density", req.MaxCurrentDensity, "A/cm2"},
		{"Window utilization target", req.Ku, ""},
	}
}

func xlsxCoreRows(result *design.TransformerResult) []xlsxRow {
	core := result.Core
	alternatives := make([]string, 0, len(result.AlternativeCores))
	for _, alt := range result.AlternativeCores {
		alternatives = append(alternatives, alt.PartNumber)
	}
	return []xlsxRow{
		{"Design method", result.DesignMethodName, ""},
		{"Required area product", result.CalculatedApCM4, "cm4"},
		{"Part number", core.PartNumber, ""},
		{"Manufacturer", core.Manufacturer, ""},
		{"Geometry", core.Geometry, ""},
		{"Material", core.Material, ""},
		{"Catalog source", core.Source, ""},
		{"Effective area Ae", core.AeCM2, "cm2"},
		{"Window area Wa", core.WaCM2, "cm2"},
		{"Area product Ap", core.ApCM4, "cm4"},
		{"Mean length turn", core.MLTCM, "cm"},
		{"Magnetic path length", core.LmCM, "cm"},
		{"Core volume Ve", core.VeCM3, "cm3"},
		{"Surface area At", core.AtCM2, "cm2"},
		{"Saturation flux density", core.BsatT, "T"},
		{"Working flux density", core.BmaxT, "T"},
		{"Initial permeability", core.MuI, ""},
		{"Alternative cores", strings.Join(alternatives, ", "), ""},
	}
}

func xlsxWindingRows(result *design.TransformerResult) []xlsxRow {
	winding := result.Winding
	return []xlsxRow{
		{"Turns ratio", result.TurnsRatio, ""},
		{"Primary turns", winding.PrimaryTurns, ""},
		{"Primary wire AWG", winding.PrimaryWireAWG, ""},
		{"Primary wire diameter", winding.PrimaryWireDiaMM, "mm"},
		{"Primary strands", winding.PrimaryStrands, ""},
		{"Primary layers", winding.PrimaryLayers, ""},
		{"Primary Rdc", winding.PrimaryRdcMOhm, "mOhm"},
		{"Primary Rac/Rdc", winding.PrimaryRacRdc, ""},
		{"Secondary turns", winding.SecondaryTurns, ""},
		{"Secondary wire AWG", winding.SecondaryWireAWG, ""},
		{"Secondary wire diameter", winding.SecondaryWireDiaMM, "mm"},
		{"Secondary strands", winding.SecondaryStrands, ""},
		{"Secondary layers", winding.SecondaryLayers, ""},
		{"Secondary Rdc", winding.SecondaryRdcMOhm, "mOhm"},
		{"Secondary Rac/Rdc", winding.SecondaryRacRdc, ""},
		{"Window utilization Ku", winding.TotalKu, ""},
		{"Ku status", winding.KuStatus, ""},
	}
}

func xlsxLossRows(result *design.TransformerResult) []xlsxRow {
	losses := result.Losses
	thermal := result.Thermal
	return []xlsxRow{
		{"Core loss", losses.CoreLossW, "W"},
		{"Core loss density", losses.CoreLossDensityMWCm3, "mW/cm3"},
		{"Primary copper loss", losses.PrimaryCopperLossW, "W"},
		{"Secondary copper loss", losses.SecondaryCopperLossW, "W"},
		{"Total copper loss", losses.TotalCopperLossW, "W"},
		{"Total loss", losses.TotalLossW, "W"},
		{"Efficiency", losses.EfficiencyPct, "%"},
		{"Pfe/Pcu ratio", losses.PfePcuRatio, ""},
		{"Temperature rise", thermal.TemperatureRiseC, "C"},
		{"Hotspot temperature", thermal.HotspotTempC, "C"},
		{"Thermal margin", thermal.ThermalMarginC, "C"},
		{"Thermal status", thermal.ThermalStatus, ""},
		{"Cooling recommendation", thermal.CoolingRecommendation, ""},
		{"Design viable", result.DesignViable, ""},
		{"Confidence score", result.ConfidenceScore, ""},
	}
}

func xlsxFill(f *excelize.File, sheet string, headerStyle int, rows []xlsxRow) error {
	for col, title := range []string{"Parameter", "Value", "Unit"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		line := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.name); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.value); err != nil {
			return err
		}
		if row.unit != "" {
			if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.unit); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 22)
}

func xlsxValidation(f *excelize.File, headerStyle int, result *design.TransformerResult) error {
	const sheet = "Validation"
	headers := []string{"Parameter", "Ours", "Reference", "Diff %", "Status", "Confidence", "Source"}
	for col, title := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	if result.Validation == nil {
		return f.SetCellValue(sheet, "A2", "No cross-validation attached")
	}

	line := 2
	for _, check := range result.Validation.Validations {
		values := []interface{}{
			check.Parameter,
			check.OurValue,
			check.ReferenceValue,
			check.DifferencePercent,
			check.Status,
			check.Confidence,
			check.Source,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, line)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		line++
	}

	line++
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", line), "Overall"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("E%d", line), result.Validation.OverallStatus); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("F%d", line), result.Validation.OverallConfidence); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "G", "G", 30)
}
