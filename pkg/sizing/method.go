package sizing

// Design method identifiers.
const (
	MethodAp   = "Ap"
	MethodKg   = "Kg"
	MethodKgfe = "Kgfe"
	MethodAuto = "auto"
)

// methodNames maps method identifiers to their display names.
var methodNames = map[string]string{
	MethodAp:   "McLyman Ap (Area Product)",
	MethodKg:   "McLyman Kg (Regulation)",
	MethodKgfe: "Erickson Kgfe (Loss Optimized)",
}

// SelectMethod picks the sizing method for a transformer design. High
// frequency designs use the area product method; tight regulation at line
// frequency calls for the Kg method.
func SelectMethod(regulationPct, outputPowerW, frequencyHz float64) string {
	if frequencyHz > 1000 {
		return MethodAp
	}
	if regulationPct < 3 {
		return MethodKg
	}
	return MethodAp
}

// MethodDisplayName returns the human-readable name for a design method
// identifier. Unknown identifiers map to the area product method name.
func MethodDisplayName(method string) string {
	if name, ok := methodNames[method]; ok {
		return name
	}
	return methodNames[MethodAp]
}
