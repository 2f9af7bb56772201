package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteFEMMScript(t *testing.T) {
	result, req := exportFixture()

	var buf bytes.Buffer
	if err := WriteFEMM(&buf, result, req); err != nil {
		t.Fatalf("WriteFEMM error: %v", err)
	}
	script := buf.String()

	if !strings.HasPrefix(script, "-- FEMM Lua Script") {
		t.Errorf("script should open with the FEMM header, got %q", script[:40])
	}

	for _, fragment := range []string{
		`mi_probdef(100000, "millimeters", "axi", 1e-8)`,
		`mi_addmaterial("N87", 2000, 2000,`,
		`mi_setblockprop("N87", 0, 1, "<None>", 0, 0, 0)`,
		`mi_setblockprop("Copper", 0, 1, "Primary", 0, 0, 15)`,
		`mi_setblockprop("Copper", 0, 1, "Secondary", 0, 0, 4)`,
		`mi_addcircprop("Primary", 1, 1)`,
		"mi_makeABC()",
		"mi_analyze()",
		// sqrt(Ae) and sqrt(Wa) scaled to millimeters.
		"center_leg = 8.7177",
		"window_w = 7.589",
		"window_h = 11.38",
		// Lua format verbs must survive the template expansion.
		`string.format("Primary Inductance: %.3f mH"`,
		`string.format("Flux Linkage: %.6f Wb"`,
	} {
		if !strings.Contains(script, fragment) {
			t.Errorf("script missing fragment %q", fragment)
		}
	}

	if strings.Contains(script, "%!") {
		t.Error("script contains a formatting error marker")
	}
}
