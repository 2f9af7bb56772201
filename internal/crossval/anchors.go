package crossval

import (
	"math"
	"strings"
)

// lossAnchor is one datasheet loss-curve point: loss density at a frequency
// and peak AC flux density, both measured near 100 °C.
type lossAnchor struct {
	fKHz    float64
	bMT     float64
	pvMWCm3 float64
}

// Datasheet anchor points per material family. These are read off published
// manufacturer loss curves, giving the validator a calibration independent of
// the Steinmetz fit the design path uses.
var lossAnchors = map[string][]lossAnchor{
	"n87": {
		{25, 200, 80},
		{50, 100, 50},
		{50, 200, 200},
		{100, 50, 50},
		{100, 100, 120},
		{100, 200, 480},
		{200, 50, 100},
		{200, 100, 380},
		{300, 50, 180},
		{300, 100, 700},
		{500, 50, 400},
	},
	"3c90": {
		{25, 200, 70},
		{50, 100, 40},
		{50, 200, 180},
		{100, 50, 35},
		{100, 100, 100},
		{100, 200, 400},
		{200, 50, 80},
		{200, 100, 350},
		{300, 50, 150},
		{300, 100, 600},
	},
	"3c94": {
		{50, 100, 30},
		{100, 50, 25},
		{100, 100, 80},
		{100, 200, 300},
		{200, 50, 60},
		{200, 100, 280},
		{300, 50, 120},
		{300, 100, 500},
	},
	"3c95": {
		{50, 100, 25},
		{100, 50, 20},
		{100, 100, 60},
		{100, 200, 250},
		{200, 50, 50},
		{200, 100, 220},
		{300, 50, 100},
		{300, 100, 400},
		{500, 50, 200},
	},
	"ferrite": {
		{100, 50, 35},
		{100, 100, 100},
		{100, 200, 400},
		{200, 100, 350},
		{300, 100, 600},
	},
}

// anchorKey normalizes a material name to an anchor table key. Unknown
// materials fall back to the generic ferrite curve.
func anchorKey(material string) string {
	key := strings.ToLower(strings.TrimSpace(material))
	if _, ok := lossAnchors[key]; ok {
		return key
	}
	switch {
	case strings.HasPrefix(key, "n"):
		return "n87"
	case strings.HasPrefix(key, "3c9"):
		return "3c94"
	case strings.HasPrefix(key, "3c"):
		return "3c90"
	}
	return "ferrite"
}

// ferriteAnchors returns the anchor table for a ferrite material, or nil for
// powder and lamination materials whose datasheet curves are not tabulated
// here.
func ferriteAnchors(material string) []lossAnchor {
	key := strings.ToLower(strings.TrimSpace(material))
	for _, family := range []string{"kool", "mpp", "sendust", "high_flux", "xflux", "powder"} {
		if strings.Contains(key, family) {
			return nil
		}
	}
	if len(key) >= 2 && key[0] == 'm' && key[1] >= '0' && key[1] <= '9' {
		return nil
	}
	return lossAnchors[anchorKey(key)]
}

// maxAnchorLogDistance is the farthest operating point, in log space, the
// anchor extrapolation is trusted for. One unit is a factor of e across
// frequency and flux combined.
const maxAnchorLogDistance = 1.0

// nearestAnchor picks the anchor closest to the operating point in log space
// and returns it with its log-distance. The log metric keeps 50→100 kHz the
// same distance as 100→200 kHz, matching how loss curves are plotted.
func nearestAnchor(anchors []lossAnchor, fKHz, bMT float64) (lossAnchor, float64) {
	best := anchors[0]
	bestDist := math.Inf(1)
	for _, a := range anchors {
		dist := math.Abs(math.Log(fKHz/a.fKHz)) + math.Abs(math.Log(bMT/a.bMT))
		if dist < bestDist {
			best = a
			bestDist = dist
		}
	}
	return best, bestDist
}

// scaleAnchor extrapolates an anchor's loss density to the operating point
// using typical power-ferrite Steinmetz exponents.
func scaleAnchor(a lossAnchor, fKHz, bMT float64) float64 {
	return a.pvMWCm3 * math.Pow(fKHz/a.fKHz, 1.46) * math.Pow(bMT/a.bMT, 2.75)
}
