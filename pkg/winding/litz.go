package winding

import (
	"fmt"
	"math"
	"strings"

	"github.com/Denys/transformer-designer/pkg/constants"
)

// Litz optimization goals.
const (
	LitzOptimizeLoss = "loss"
	LitzOptimizeCost = "cost"
	LitzOptimizeSize = "size"
)

// litzBundleSizes are the standard strand counts for hex-packed bundles.
var litzBundleSizes = []int{7, 19, 37, 65, 127, 259, 427, 741, 1050, 2100}

// litzStrandBand maps a frequency band to its recommended strand gauge.
type litzStrandBand struct {
	minHz, maxHz float64
	awg          int
}

var litzStrandBands = []litzStrandBand{
	{20000, 50000, 40},
	{50000, 100000, 42},
	{100000, 200000, 44},
	{200000, 500000, 44},
	{500000, 1000000, 46},
	{1000000, 5000000, 46},
}

// litzArrangements describes the usual construction for the standard
// bundle sizes that are wound in sub-bunches.
var litzArrangements = map[int]string{
	259:  "37x7",
	427:  "61x7",
	741:  "19x39",
	1050: "7x150",
	2100: "7x300",
}

// LitzOptions adjusts DesignLitz behavior. Zero values keep defaults.
type LitzOptions struct {
	MaxStrandDiameterMM float64
	Optimization        string // loss, cost, or size; default loss
}

// LitzDesign describes a recommended Litz wire construction.
type LitzDesign struct {
	WireType             string  `json:"wire_type"`
	StrandAWG            int     `json:"strand_awg"`
	StrandDiameterMM     float64 `json:"strand_diameter_mm"`
	StrandCount          int     `json:"strand_count"`
	BundleArrangement    string  `json:"bundle_arrangement"`
	OuterDiameterMM      float64 `json:"outer_diameter_mm"`
	TotalAreaCM2         float64 `json:"total_area_cm2"`
	RdcMilliOhmPerM      float64 `json:"rdc_mohm_per_m"`
	ACFactor             float64 `json:"ac_factor"`
	SkinDepthMM          float64 `json:"skin_depth_mm"`
	EffectiveAtFrequency bool    `json:"effective_at_frequency"`
	Notes                string  `json:"notes"`
}

// DesignLitz recommends a Litz wire construction for the required copper
// area at the operating frequency. Below 10 kHz solid wire is adequate and
// the returned design says so.
func DesignLitz(requiredAreaCm2, frequencyHz float64, opts *LitzOptions) (LitzDesign, error) {
	if requiredAreaCm2 <= 0 {
		return LitzDesign{}, fmt.Errorf("required area must be positive, got %.6f", requiredAreaCm2)
	}

	if frequencyHz < 10000 {
		return LitzDesign{
			WireType: WireTypeSolid,
			Notes:    "Frequency too low for Litz wire benefit",
		}, nil
	}

	skinDepth := SkinDepthMM(frequencyHz, 20)

	// Strand diameter stays under 1.5 skin depths, tightening to one skin
	// depth in the high hundreds of kHz.
	maxStrandD := 1.5 * skinDepth
	if frequencyHz > 500000 {
		maxStrandD = skinDepth
	}
	optimization := LitzOptimizeLoss
	if opts != nil {
		if opts.MaxStrandDiameterMM > 0 {
			maxStrandD = math.Min(opts.MaxStrandDiameterMM, 2*skinDepth)
		}
		if opts.Optimization != "" {
			optimization = opts.Optimization
		}
	}

	strandAWG := selectLitzStrandAWG(frequencyHz, maxStrandD)
	strand := WireByAWG(strandAWG)

	strandsNeeded := int(math.Ceil(requiredAreaCm2 / strand.AreaCM2))
	bundleSize := selectBundleSize(strandsNeeded, optimization)
	totalAreaCm2 := strand.AreaCM2 * float64(bundleSize)

	// Hexagonal packing: strands across the bundle diameter, plus about
	// 25 percent for insulation and voids.
	strandsAcross := math.Sqrt(float64(bundleSize)*4/math.Pi) * 0.866
	outerDiameterMM := strandsAcross * strand.DiameterMM * 1.25

	acFactor := estimateLitzACFactor(strand.DiameterMM, frequencyHz, bundleSize)
	effective := strand.DiameterMM <= 2*skinDepth && acFactor < 1.5

	rdcPerM := constants.CopperResistivityOhmM / (totalAreaCm2 * 1e-4) * 1000 // mOhm/m

	return LitzDesign{
		WireType:             WireTypeLitz,
		StrandAWG:            strandAWG,
		StrandDiameterMM:     strand.DiameterMM,
		StrandCount:          bundleSize,
		BundleArrangement:    describeBundleArrangement(bundleSize),
		OuterDiameterMM:      outerDiameterMM,
		TotalAreaCM2:         totalAreaCm2,
		RdcMilliOhmPerM:      rdcPerM,
		ACFactor:             acFactor,
		SkinDepthMM:          skinDepth,
		EffectiveAtFrequency: effective,
		Notes:                litzNotes(strandAWG, bundleSize, frequencyHz, effective),
	}, nil
}

// selectLitzStrandAWG picks a strand gauge satisfying both the frequency
// recommendation and the diameter limit.
func selectLitzStrandAWG(frequencyHz, maxDiameterMM float64) int {
	recommended := 40
	matched := false
	for _, band := range litzStrandBands {
		if frequencyHz >= band.minHz && frequencyHz < band.maxHz {
			recommended = band.awg
			matched = true
			break
		}
	}
	if !matched && frequencyHz >= 5000000 {
		recommended = 46
	}

	for awg := recommended; awg <= 46; awg++ {
		if WireByAWG(awg).DiameterMM <= maxDiameterMM {
			return awg
		}
	}
	return 46
}

// selectBundleSize rounds a strand requirement up to a standard bundle
// size according to the optimization goal.
func selectBundleSize(strandsNeeded int, optimization string) int {
	switch optimization {
	case LitzOptimizeCost:
		for _, size := range litzBundleSizes {
			if size >= strandsNeeded {
				return size
			}
		}
	case LitzOptimizeSize:
		closest := litzBundleSizes[0]
		for _, size := range litzBundleSizes[1:] {
			if abs(size-strandsNeeded) < abs(closest-strandsNeeded) {
				closest = size
			}
		}
		if float64(closest) >= float64(strandsNeeded)*0.9 {
			return closest
		}
		for _, size := range litzBundleSizes {
			if size >= strandsNeeded {
				return size
			}
		}
	default:
		for _, size := range litzBundleSizes {
			if float64(size) >= float64(strandsNeeded)*0.95 {
				return size
			}
		}
	}
	// Beyond the largest standard size, use the raw count as parallel
	// bundles.
	return strandsNeeded
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// estimateLitzACFactor approximates the AC to DC resistance ratio of a
// twisted bundle from per-strand skin effect and strand-to-strand
// proximity effect.
func estimateLitzACFactor(strandDiameterMM, frequencyHz float64, numStrands int) float64 {
	skinDepth := SkinDepthMM(frequencyHz, 20)
	dDelta := strandDiameterMM / skinDepth

	var frSkin float64
	switch {
	case dDelta < 0.5:
		frSkin = 1.0
	case dDelta < 1.0:
		frSkin = 1.0 + 0.1*dDelta*dDelta
	case dDelta < 2.0:
		frSkin = 1.0 + 0.3*dDelta*dDelta
	default:
		frSkin = dDelta
	}

	var frProx float64
	switch {
	case numStrands <= 19:
		frProx = 1.0
	case numStrands <= 65:
		frProx = 1.0 + 0.02*dDelta*dDelta
	case numStrands <= 259:
		frProx = 1.0 + 0.05*dDelta*dDelta
	default:
		frProx = 1.0 + 0.1*dDelta*dDelta
	}

	return frSkin * frProx
}

// describeBundleArrangement names the construction for a strand count.
func describeBundleArrangement(numStrands int) string {
	if arrangement, ok := litzArrangements[numStrands]; ok {
		return arrangement
	}
	return fmt.Sprintf("%dx1", numStrands)
}

// litzNotes summarizes practical concerns with the selected construction.
func litzNotes(strandAWG, strandCount int, frequencyHz float64, effective bool) string {
	var notes []string

	if !effective {
		notes = append(notes, "Strands may be too large for this frequency. Consider finer gauge.")
	}
	if strandCount > 741 {
		notes = append(notes, "Large strand count - consider multiple parallel bundles.")
	}
	if frequencyHz > 1000000 && strandAWG < 44 {
		notes = append(notes, "For MHz range, consider AWG 44-46 strands.")
	}
	if strandCount < 19 {
		notes = append(notes, "Small bundle - verify sufficient current capacity.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Good configuration for specified frequency.")
	}

	return strings.Join(notes, " ")
}
