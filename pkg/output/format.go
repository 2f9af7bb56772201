// Package output provides utilities for formatting and displaying design results.
package output

import (
	"fmt"
	"io"

	"github.com/Denys/transformer-designer/internal/crossval"
	"github.com/Denys/transformer-designer/internal/design"
	"github.com/Denys/transformer-designer/pkg/units"
)

// line is one labelled figure in a report section.
type line struct {
	Name  string
	Value string
	Unit  string
}

// section groups related figures under one heading.
type section struct {
	Title string
	Rows  []line
}

// PrettyTransformer outputs a human-readable rather than machine-readable report.
func PrettyTransformer(w io.Writer, res *design.TransformerResult, req design.TransformerRequirements) {
	fmt.Fprintf(w, "--- Transformer design: %s, %g V to %g V at %s ---\n",
		units.FormatPower(req.OutputPowerW), req.PrimaryVoltageV, req.SecondaryVoltageV,
		units.FormatFrequency(req.FrequencyHz))
	writeSections(w, transformerSections(res))
	writeMessages(w, res.Verification, res.Validation)
}

// PrettyInductor outputs a human-readable rather than machine-readable report.
func PrettyInductor(w io.Writer, res *design.InductorResult, req design.InductorRequirements) {
	fmt.Fprintf(w, "--- Inductor design: %s at %g A, %s ---\n",
		units.FormatInductance(req.InductanceUH*1e-6), req.DCCurrentA,
		units.FormatFrequency(req.FrequencyHz))
	writeSections(w, inductorSections(res))
	writeMessages(w, res.Verification, res.Validation)
}

// PrettyNoMatch explains a catalog miss: what was required, what exists, and
// which requirement changes would close the distance.
func PrettyNoMatch(w io.Writer, nm *design.NoMatchResult) {
	fmt.Fprintf(w, "--- No suitable core ---\n")
	fmt.Fprintf(w, "%s\n", nm.Message)
	fmt.Fprintf(w, "  %-28s | %.2f cm⁴\n", "Required area product", nm.RequiredApCM4)
	fmt.Fprintf(w, "  %-28s | %.2f cm⁴\n", "Largest available", nm.AvailableMaxApCM4)

	if len(nm.Suggestions) > 0 {
		fmt.Fprintf(w, "\nSuggested changes\n")
		for _, s := range nm.Suggestions {
			note := "feasible"
			if !s.Feasible {
				note = "aggressive"
			}
			unit := s.Unit
			if unit != "" {
				unit = " " + unit
			}
			fmt.Fprintf(w, "  %-28s | %g -> %g%s, %s\n", s.Parameter, s.CurrentValue, s.SuggestedValue, unit, note)
			fmt.Fprintf(w, "  %-28s |   %s\n", "", s.Impact)
		}
	}
	if len(nm.ClosestCores) > 0 {
		fmt.Fprintf(w, "\nClosest catalog cores\n")
		for _, c := range nm.ClosestCores {
			fmt.Fprintf(w, "  %-28s | %.2f cm⁴, up to %s (%s)\n",
				c.PartNumber, c.ApCM4, units.FormatPower(c.MaxPowerW), c.Manufacturer)
		}
	}
	if len(nm.AlternativeApproaches) > 0 {
		fmt.Fprintf(w, "\nAlternative approaches\n")
		for _, a := range nm.AlternativeApproaches {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}
}

// CsvTransformer outputs in comma-separated value format.
func CsvTransformer(w io.Writer, res *design.TransformerResult) {
	writeCsv(w, transformerSections(res))
}

// CsvInductor outputs in comma-separated value format.
func CsvInductor(w io.Writer, res *design.InductorResult) {
	writeCsv(w, inductorSections(res))
}

func writeSections(w io.Writer, sections []section) {
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s\n", s.Title)
		for _, row := range s.Rows {
			value := row.Value
			if row.Unit != "" {
				value += " " + row.Unit
			}
			fmt.Fprintf(w, "  %-28s | %s\n", row.Name, value)
		}
	}
}

func writeCsv(w io.Writer, sections []section) {
	fmt.Fprintf(w, `"parameter","value","unit"`)
	fmt.Fprintf(w, "\n")
	for _, s := range sections {
		for _, row := range s.Rows {
			fmt.Fprintf(w, `"%s","%s","%s"`, row.Name, row.Value, row.Unit)
			fmt.Fprintf(w, "\n")
		}
	}
}

// writeMessages appends the free-text verification findings below the tables.
func writeMessages(w io.Writer, v design.VerificationStatus, report *crossval.Report) {
	writeList(w, "Errors", v.Errors)
	writeList(w, "Warnings", v.Warnings)
	writeList(w, "Recommendations", v.Recommendations)
	if report != nil {
		writeList(w, "Validator recommendations", report.Recommendations)
	}
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func transformerSections(res *design.TransformerResult) []section {
	sizing := section{Title: "Sizing", Rows: []line{
		{"Design method", res.DesignMethodName, ""},
		{"Required area product", fmt.Sprintf("%.3f", res.CalculatedApCM4), "cm⁴"},
	}}
	if res.CalculatedKgCM5 != nil {
		sizing.Rows = append(sizing.Rows, line{"Core geometry Kg", fmt.Sprintf("%.4f", *res.CalculatedKgCM5), "cm⁵"})
	}
	if res.OptimalPfePcu != nil {
		sizing.Rows = append(sizing.Rows, line{"Optimal Pfe/Pcu", fmt.Sprintf("%.2f", *res.OptimalPfePcu), ""})
	}

	winding := section{Title: "Windings", Rows: []line{
		{"Turns ratio", fmt.Sprintf("%.4f", res.TurnsRatio), ""},
		{"Primary", windingLine(res.Winding.PrimaryTurns, res.Winding.PrimaryWireAWG,
			res.Winding.PrimaryStrands, res.Winding.PrimaryLayers), ""},
		{"Primary wire dia", fmt.Sprintf("%.2f", res.Winding.PrimaryWireDiaMM), "mm"},
		{"Primary Rdc", rdcLine(res.Winding.PrimaryRdcMOhm, res.Winding.PrimaryRacRdc), ""},
		{"Secondary", windingLine(res.Winding.SecondaryTurns, res.Winding.SecondaryWireAWG,
			res.Winding.SecondaryStrands, res.Winding.SecondaryLayers), ""},
		{"Secondary wire dia", fmt.Sprintf("%.2f", res.Winding.SecondaryWireDiaMM), "mm"},
		{"Secondary Rdc", rdcLine(res.Winding.SecondaryRdcMOhm, res.Winding.SecondaryRacRdc), ""},
		{"Window utilization", fmt.Sprintf("%.3f (%s)", res.Winding.TotalKu, res.Winding.KuStatus), ""},
	}}
	if res.MagnetizingUH != nil {
		winding.Rows = append(winding.Rows,
			line{"Magnetizing inductance", units.FormatInductance(*res.MagnetizingUH * 1e-6), ""})
	}
	if res.LeakageUH != nil {
		winding.Rows = append(winding.Rows,
			line{"Leakage inductance", units.FormatInductance(*res.LeakageUH * 1e-6), ""})
	}

	sections := []section{sizing, coreSection(res.Core)}
	if alt := alternativesSection(res.AlternativeCores); alt != nil {
		sections = append(sections, *alt)
	}
	return append(sections, winding, lossSection(res.Losses), thermalSection(res.Thermal),
		verdictSection(res.Verification, res.Validation, res.DesignViable, res.ConfidenceScore))
}

func inductorSections(res *design.InductorResult) []section {
	sizing := section{Title: "Sizing", Rows: []line{
		{"Stored energy", units.Format(res.EnergyUJ*1e-6, "J"), ""},
		{"Required area product", fmt.Sprintf("%.3f", res.CalculatedApCM4), "cm⁴"},
	}}

	flux := section{Title: "Gap and flux"}
	if res.AirGapMM != nil {
		gap := fmt.Sprintf("%g mm", *res.AirGapMM)
		if res.GapLocation != nil {
			gap += ", " + *res.GapLocation
		}
		flux.Rows = append(flux.Rows,
			line{"Air gap", gap, ""},
			line{"Fringing factor", fmt.Sprintf("%.3f", res.FringingFactor), ""})
	} else {
		flux.Rows = append(flux.Rows, line{"Air gap", "none", ""})
	}
	flux.Rows = append(flux.Rows,
		line{"DC flux density", units.FormatFlux(res.BdcT), ""},
		line{"AC flux density", units.FormatFlux(res.BacT), ""},
		line{"Peak flux density", units.FormatFlux(res.BpeakT), ""},
		line{"Saturation margin", fmt.Sprintf("%.1f", res.SaturationMarginPct), "%"})

	winding := section{Title: "Winding", Rows: []line{
		{"Winding", windingLine(res.Winding.Turns, res.Winding.WireAWG,
			res.Winding.Strands, res.Winding.Layers), ""},
		{"Wire dia", fmt.Sprintf("%.2f", res.Winding.WireDiaMM), "mm"},
		{"Rdc", rdcLine(res.Winding.RdcMOhm, res.Winding.RacRdc), ""},
		{"Window utilization", fmt.Sprintf("%.3f (%s)", res.Winding.WindowUtilization, res.Winding.KuStatus), ""},
		{"Achieved inductance", units.FormatInductance(res.CalculatedInductanceUH * 1e-6), ""},
		{"Inductance error", fmt.Sprintf("%+.1f", res.InductanceTolerancePct), "%"},
	}}

	return []section{sizing, coreSection(res.Core), flux, winding,
		lossSection(res.Losses), thermalSection(res.Thermal),
		verdictSection(res.Verification, res.Validation, res.DesignViable, res.ConfidenceScore)}
}

func coreSection(core design.CoreSelection) section {
	name := core.PartNumber
	if core.Manufacturer != "" {
		name += " (" + core.Manufacturer + ")"
	}
	s := section{Title: "Core", Rows: []line{
		{"Part number", name, ""},
		{"Geometry / material", fmt.Sprintf("%s / %s, %s", core.Geometry, core.Material, core.Source), ""},
		{"Effective area Ae", fmt.Sprintf("%.3f", core.AeCM2), "cm²"},
		{"Window area Wa", fmt.Sprintf("%.3f", core.WaCM2), "cm²"},
		{"Area product Ap", fmt.Sprintf("%.3f", core.ApCM4), "cm⁴"},
		{"Mean length turn", fmt.Sprintf("%.2f", core.MLTCM), "cm"},
		{"Magnetic path length", fmt.Sprintf("%.2f", core.LmCM), "cm"},
		{"Core volume", fmt.Sprintf("%.2f", core.VeCM3), "cm³"},
		{"Surface area", fmt.Sprintf("%.1f", core.AtCM2), "cm²"},
		{"Weight", fmt.Sprintf("%.0f", core.WeightG), "g"},
		{"Saturation flux Bsat", units.FormatFlux(core.BsatT), ""},
		{"Operating flux Bmax", units.FormatFlux(core.BmaxT), ""},
	}}
	if core.DatasheetURL != "" {
		s.Rows = append(s.Rows, line{"Datasheet", core.DatasheetURL, ""})
	}
	return s
}

func alternativesSection(alts []design.AlternativeCore) *section {
	if len(alts) == 0 {
		return nil
	}
	s := section{Title: "Alternative cores"}
	for _, alt := range alts {
		s.Rows = append(s.Rows, line{alt.PartNumber,
			fmt.Sprintf("%.3f cm⁴, %s %s (%s)", alt.ApCM4, alt.Geometry, alt.Material, alt.Source), ""})
	}
	return &s
}

func lossSection(losses design.LossAnalysis) section {
	s := section{Title: "Losses", Rows: []line{
		{"Core loss", units.FormatPower(losses.CoreLossW), ""},
		{"Core loss density", fmt.Sprintf("%.1f", losses.CoreLossDensityMWCm3), "mW/cm³"},
	}}
	if losses.SecondaryCopperLossW > 0 {
		s.Rows = append(s.Rows,
			line{"Primary copper loss", units.FormatPower(losses.PrimaryCopperLossW), ""},
			line{"Secondary copper loss", units.FormatPower(losses.SecondaryCopperLossW), ""})
	}
	s.Rows = append(s.Rows,
		line{"Copper loss", units.FormatPower(losses.TotalCopperLossW), ""},
		line{"Total loss", units.FormatPower(losses.TotalLossW), ""},
		line{"Efficiency", fmt.Sprintf("%.2f", losses.EfficiencyPct), "%"},
		line{"Pfe/Pcu", fmt.Sprintf("%.2f", losses.PfePcuRatio), ""})
	return s
}

func thermalSection(thermal design.ThermalAnalysis) section {
	return section{Title: "Thermal", Rows: []line{
		{"Dissipation density", fmt.Sprintf("%.4f", thermal.PowerDissipationWCm2), "W/cm²"},
		{"Temperature rise", fmt.Sprintf("%.1f", thermal.TemperatureRiseC), "°C"},
		{"Hotspot", fmt.Sprintf("%.1f", thermal.HotspotTempC), "°C"},
		{"Thermal margin", fmt.Sprintf("%.1f", thermal.ThermalMarginC), "°C"},
		{"Status", thermal.ThermalStatus, ""},
		{"Cooling", thermal.CoolingRecommendation, ""},
	}}
}

func verdictSection(v design.VerificationStatus, report *crossval.Report, viable bool, confidence float64) section {
	s := section{Title: "Verdict", Rows: []line{
		{"Electrical", v.Electrical, ""},
		{"Mechanical", v.Mechanical, ""},
		{"Thermal", v.Thermal, ""},
		{"Design viable", yesNo(viable), ""},
		{"Confidence", fmt.Sprintf("%.0f%%", confidence*100), ""},
	}}
	if report != nil {
		s.Rows = append(s.Rows, line{"Cross-validation",
			fmt.Sprintf("%s, %d checks, %.0f%% confidence",
				report.OverallStatus, len(report.Validations), report.OverallConfidence*100), ""})
	}
	return s
}

func windingLine(turns, awg, strands, layers int) string {
	if strands > 1 {
		return fmt.Sprintf("%d turns, litz %d x AWG %d, %d layers", turns, strands, awg, layers)
	}
	return fmt.Sprintf("%d turns, AWG %d, %d layers", turns, awg, layers)
}

func rdcLine(rdcMOhm, racRdc float64) string {
	return fmt.Sprintf("%s (Rac/Rdc %.2f)", units.FormatResistance(rdcMOhm*1e-3), racRdc)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
