package export

import (
	"fmt"
	"io"
	"math"

	"github.com/Denys/transformer-designer/internal/design"
)

// femmScript is the Lua template for a simplified axisymmetric 2D model of
// the design. Verbs fill in, in order: frequency, core material, center leg
// width [mm], window width [mm], window height [mm], core material again,
// primary turns, secondary turns.
const femmScript = `-- FEMM Lua Script for Transformer Design
-- Generated by Transformer Designer

-- Create new magnetics problem
newdocument(0)
mi_probdef(%g, "millimeters", "axi", 1e-8)

-- Define materials
mi_addmaterial("Air", 1, 1, 0, 0, 0, 0, 0, 0, 0, 0)
mi_addmaterial("%s", 2000, 2000, 0, 0, 0, 0, 0, 0, 0, 0)
mi_addmaterial("Copper", 1, 1, 0, 0, 58e6, 0, 0, 0, 0, 0)

-- Core dimensions
center_leg = %g
window_w = %g
window_h = %g

-- Draw E-core cross-section (simplified)
-- Center leg
mi_drawrectangle(0, -window_h/2, center_leg/2, window_h/2)

-- Top yoke
mi_drawrectangle(0, window_h/2, center_leg/2 + window_w, window_h/2 + center_leg/2)

-- Bottom yoke
mi_drawrectangle(0, -window_h/2 - center_leg/2, center_leg/2 + window_w, -window_h/2)

-- Outer leg
mi_drawrectangle(center_leg/2 + window_w, -window_h/2, center_leg/2 + window_w + center_leg/2, window_h/2)

-- Label core region
mi_addblocklabel(center_leg/4, 0)
mi_selectlabel(center_leg/4, 0)
mi_setblockprop("%s", 0, 1, "<None>", 0, 0, 0)
mi_clearselected()

-- Primary winding region
mi_drawrectangle(center_leg/2 + 1, -window_h/2 + 2, center_leg/2 + window_w/2 - 1, window_h/2 - 2)
mi_addblocklabel(center_leg/2 + window_w/4, 0)
mi_selectlabel(center_leg/2 + window_w/4, 0)
mi_setblockprop("Copper", 0, 1, "Primary", 0, 0, %d)
mi_clearselected()

-- Secondary winding region
mi_drawrectangle(center_leg/2 + window_w/2 + 1, -window_h/2 + 2, center_leg/2 + window_w - 1, window_h/2 - 2)
mi_addblocklabel(center_leg/2 + 3*window_w/4, 0)
mi_selectlabel(center_leg/2 + 3*window_w/4, 0)
mi_setblockprop("Copper", 0, 1, "Secondary", 0, 0, %d)
mi_clearselected()

-- Air region
mi_addblocklabel(center_leg + window_w/2, window_h)
mi_selectlabel(center_leg + window_w/2, window_h)
mi_setblockprop("Air", 0, 1, "<None>", 0, 0, 0)
mi_clearselected()

-- Define circuits
mi_addcircprop("Primary", 1, 1)   -- 1A excitation
mi_addcircprop("Secondary", 0, 1) -- Open circuit

-- Create boundary
mi_makeABC()

-- Zoom to fit
mi_zoomnatural()

-- Save file
mi_saveas("transformer_design.fem")

-- Run analysis
mi_analyze()
mi_loadsolution()

-- Post-processing
print("Transformer Analysis Results")
print("============================")

-- Get inductance
L = mo_getcircuitproperties("Primary")
print(string.format("Primary Inductance: %%.3f mH", L[2]*1000))

-- Get flux linkage
print(string.format("Flux Linkage: %%.6f Wb", L[1]))
`

// WriteFEMM writes a FEMM Lua script that rebuilds the design as a 2D
// axisymmetric problem, meshes and solves it, and prints the primary
// inductance and flux linkage.
func WriteFEMM(w io.Writer, result *design.TransformerResult, req design.TransformerRequirements) error {
	core := result.Core
	centerLegMM := math.Sqrt(core.AeCM2) * 10
	windowWidthMM := math.Sqrt(core.WaCM2) * 10 * 0.8
	windowHeightMM := math.Sqrt(core.WaCM2) * 10 * 1.2

	_, err := fmt.Fprintf(w, femmScript,
		req.FrequencyHz,
		core.Material,
		centerLegMM,
		windowWidthMM,
		windowHeightMM,
		core.Material,
		result.Winding.PrimaryTurns,
		result.Winding.SecondaryTurns,
	)
	return err
}
